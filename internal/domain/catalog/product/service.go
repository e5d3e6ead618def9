package product

import (
	"context"
	"fmt"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/core/tx"
	"berostock/internal/core/types"
	"berostock/pkg/logger"
)

// Service provides business operations for the product catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// CreateInput carries the fields for a new product.
type CreateInput struct {
	Name         string
	Quantity     int64
	CostPrice    types.Money
	SellingPrice *types.Money // nil means derive from cost price
	Supplier     Supplier
	Category     *string
	Description  *string
	ImageURL     *string
}

// Create creates a new catalog product.
func (s *Service) Create(ctx context.Context, createdBy id.ID, in CreateInput) (*Product, error) {
	p := New(createdBy, in.Name, in.Quantity, in.CostPrice, in.Supplier)
	if in.SellingPrice != nil {
		p.SellingPrice = types.Round2(*in.SellingPrice)
	}
	p.Category = in.Category
	p.Description = in.Description
	p.ImageURL = in.ImageURL

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return p, nil
}

// GetByRef resolves a product by either storage key or public
// identifier, trying the primary key first.
func GetByRef(ctx context.Context, repo Repository, ref string) (*Product, error) {
	key, err := id.Parse(ref)
	if err != nil {
		return nil, apperror.NewNotFound("Product", ref)
	}

	p, err := repo.GetByID(ctx, key)
	if err == nil {
		return p, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	return repo.GetByPublicID(ctx, key)
}

// GetByRef resolves a product by storage key or public identifier.
func (s *Service) GetByRef(ctx context.Context, ref string) (*Product, error) {
	return GetByRef(ctx, s.repo, ref)
}

// UpdateInput carries patchable product fields. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name         *string
	Quantity     *int64
	CostPrice    *types.Money
	SellingPrice *types.Money
	Supplier     *Supplier
	Category     *string
	Description  *string
	ImageURL     *string
}

// Update patches an existing product. When cost price changes without
// an explicit selling price, the selling price is re-derived with the
// standard margin.
func (s *Service) Update(ctx context.Context, ref string, in UpdateInput) (*Product, error) {
	p, err := s.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
		if in.SellingPrice == nil {
			p.SellingPrice = DefaultSellingPrice(p.CostPrice)
		}
	}
	if in.SellingPrice != nil {
		p.SellingPrice = types.Round2(*in.SellingPrice)
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	if in.Category != nil {
		p.Category = in.Category
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.ImageURL != nil {
		p.ImageURL = in.ImageURL
	}

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Delete soft-deletes a product. Existing sales keep their captured
// prices and product references.
func (s *Service) Delete(ctx context.Context, ref string) error {
	p, err := s.GetByRef(ctx, ref)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, p.ID)
	})
}

// List retrieves products with filtering and pagination.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}
