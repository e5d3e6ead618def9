package dto

import (
	"time"

	"berostock/internal/domain/catalog/client"
)

// --- Request DTOs ---

// CreateClientRequest for registering clients.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateClientRequest for patching clients.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// --- Response DTOs ---

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromClient creates a response from a domain client.
func FromClient(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromClients converts a list of domain clients.
func FromClients(items []*client.Client) []*ClientResponse {
	out := make([]*ClientResponse, len(items))
	for i, c := range items {
		out[i] = FromClient(c)
	}
	return out
}
