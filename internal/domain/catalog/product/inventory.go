package product

import (
	"context"

	"berostock/internal/core/id"
)

// Inventory exposes the repository as a reference-resolving stock
// store for consumers outside the catalog.
type Inventory struct {
	repo Repository
}

func NewInventory(repo Repository) *Inventory {
	return &Inventory{repo: repo}
}

// ResolveRef looks a product up by storage key first, then by its
// public identifier.
func (inv *Inventory) ResolveRef(ctx context.Context, ref string) (*Product, error) {
	return GetByRef(ctx, inv.repo, ref)
}

func (inv *Inventory) GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]*Product, error) {
	return inv.repo.GetByIDs(ctx, ids)
}

func (inv *Inventory) DecrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error) {
	return inv.repo.DecrementStock(ctx, productID, qty)
}

func (inv *Inventory) IncrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error) {
	return inv.repo.IncrementStock(ctx, productID, qty)
}
