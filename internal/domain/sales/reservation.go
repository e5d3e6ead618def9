package sales

import (
	"context"
	"fmt"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/core/types"
	"berostock/internal/domain/catalog/product"
)

// InventoryStore is the slice of the product catalog the sale engine
// needs: reference resolution and atomic stock adjustment. Decrement
// refuses to take stock below zero; the reported boolean tells the
// caller whether the adjustment happened.
type InventoryStore interface {
	ResolveRef(ctx context.Context, ref string) (*product.Product, error)
	GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]*product.Product, error)
	DecrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error)
	IncrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error)
}

// Reserver turns requested line items into priced sale lines, taking
// the stock for each line as it goes. It must run inside a transaction:
// when any line fails the caller's rollback returns every already
// decremented quantity.
type Reserver struct {
	inventory InventoryStore
}

func NewReserver(inventory InventoryStore) *Reserver {
	return &Reserver{inventory: inventory}
}

// Reserve validates the requested items, resolves each product
// reference, decrements stock and prices the lines with the catalog
// prices in force right now.
func (r *Reserver) Reserve(ctx context.Context, items []LineItem) ([]SaleLine, error) {
	if len(items) == 0 {
		return nil, apperror.NewValidation("products array is required").WithDetail("field", "products")
	}

	seenRefs := make(map[string]struct{}, len(items))
	seenIDs := make(map[id.ID]struct{}, len(items))
	lines := make([]SaleLine, 0, len(items))

	for i, item := range items {
		if _, dup := seenRefs[item.ProductRef]; dup {
			return nil, apperror.NewDuplicateLineItem(item.ProductRef)
		}
		seenRefs[item.ProductRef] = struct{}{}

		if item.Quantity < 1 {
			return nil, apperror.NewInvalidQuantity(item.Quantity)
		}

		prod, err := r.inventory.ResolveRef(ctx, item.ProductRef)
		if err != nil {
			return nil, err
		}

		// The same product may arrive under both its storage key and
		// its public identifier.
		if _, dup := seenIDs[prod.ID]; dup {
			return nil, apperror.NewDuplicateLineItem(item.ProductRef)
		}
		seenIDs[prod.ID] = struct{}{}

		ok, err := r.inventory.DecrementStock(ctx, prod.ID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("decrement stock %s: %w", prod.ID, err)
		}
		if !ok {
			return nil, apperror.NewInsufficientStock(prod.Name, item.Quantity, prod.Quantity)
		}

		amount := types.Round2(types.MulInt(prod.SellingPrice, item.Quantity))
		profit := types.Round2(types.MulInt(prod.SellingPrice.Sub(prod.CostPrice), item.Quantity))

		lines = append(lines, SaleLine{
			LineID:       id.New(),
			LineNo:       i + 1,
			ProductID:    prod.ID,
			Quantity:     item.Quantity,
			CostPrice:    prod.CostPrice,
			SellingPrice: prod.SellingPrice,
			Amount:       amount,
			Profit:       profit,
		})
	}

	return lines, nil
}

// Restore returns reserved quantities to stock. Products deleted from
// the catalog since the sale was recorded are skipped; their stock can
// no longer be restored anywhere.
func (r *Reserver) Restore(ctx context.Context, lines []SaleLine) error {
	for _, line := range lines {
		if _, err := r.inventory.IncrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			return fmt.Errorf("restore stock %s: %w", line.ProductID, err)
		}
	}
	return nil
}
