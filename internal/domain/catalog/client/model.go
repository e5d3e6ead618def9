// Package client provides the client directory.
package client

import (
	"context"
	"regexp"
	"strings"
	"time"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Client represents a known customer.
type Client struct {
	ID      id.ID  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address,omitempty"`

	DeletionMark bool `db:"deletion_mark" json:"-"`
	Version      int  `db:"version" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// New creates a new client record.
func New(name, email, phone string) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        id.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     strings.TrimSpace(phone),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks client invariants.
func (c *Client) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("client name is required").WithDetail("field", "name")
	}
	if !emailPattern.MatchString(c.Email) {
		return apperror.NewValidation("please enter a valid email address").WithDetail("field", "email")
	}
	if c.Phone == "" {
		return apperror.NewValidation("phone number is required").WithDetail("field", "phone")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (c *Client) Touch() {
	c.UpdatedAt = time.Now().UTC()
	c.Version++
}
