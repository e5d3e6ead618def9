package client

import (
	"context"
	"fmt"

	"berostock/internal/core/id"
	"berostock/internal/core/tx"
	"berostock/pkg/logger"
)

// ListFilter for filtering clients.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// ListResult contains a page of clients.
type ListResult struct {
	Items      []*Client
	TotalCount int64
	Limit      int
	Offset     int
}

// Repository defines persistence operations for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	GetByEmail(ctx context.Context, email string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, clientID id.ID) error
	List(ctx context.Context, filter ListFilter) (ListResult, error)
}

// Service provides business operations for the client directory.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new client service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create registers a new client.
func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "client created", "id", c.ID, "email", c.Email)
	return nil
}

// GetByID retrieves a client.
func (s *Service) GetByID(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

// Update modifies an existing client.
func (s *Service) Update(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, c)
	})
}

// Delete removes a client from the directory.
func (s *Service) Delete(ctx context.Context, clientID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, clientID)
	})
}

// List retrieves clients with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}
