package product

import (
	"context"
	"time"

	"berostock/internal/core/id"
)

// ListFilter for filtering products.
type ListFilter struct {
	Search   string
	Category *string
	Supplier *Supplier
	DateFrom *time.Time
	DateTo   *time.Time

	OrderBy string
	Limit   int
	Offset  int
}

// ListResult contains a page of products.
type ListResult struct {
	Items      []*Product
	TotalCount int64
	Limit      int
	Offset     int
}

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by its storage key.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetByPublicID retrieves a product by its public identifier.
	GetByPublicID(ctx context.Context, publicID id.ID) (*Product, error)

	// GetByIDs retrieves products by storage keys, keyed by ID.
	// Missing products are simply absent from the result.
	GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]*Product, error)

	// Update modifies an existing product (optimistic locking on version).
	Update(ctx context.Context, p *Product) error

	// Delete soft-deletes a product.
	Delete(ctx context.Context, productID id.ID) error

	List(ctx context.Context, filter ListFilter) (ListResult, error)

	// DecrementStock atomically subtracts qty from on-hand stock,
	// refusing to go below zero. Returns false when stock was
	// insufficient (no row updated).
	DecrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error)

	// IncrementStock adds qty back to on-hand stock. Returns false when
	// the product no longer exists.
	IncrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error)
}
