// Package product provides the product catalog.
// Products carry the on-hand stock that the sale engine reserves and
// restores; quantity never goes below zero.
package product

import (
	"context"
	"time"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/core/types"
)

// Supplier identifies where a product is sourced from.
type Supplier string

const (
	SupplierFouani    Supplier = "Fouani"
	SupplierSomotex   Supplier = "Somotex"
	SupplierGuangzhou Supplier = "Guangzhou China"
)

// DefaultMarginRate is applied to cost price when no selling price is
// given explicitly.
var DefaultMarginRate = types.MustMoney("1.2")

// Product represents a catalog entry with on-hand stock.
type Product struct {
	// ID is the storage key.
	ID id.ID `db:"id" json:"id"`

	// PublicID is the externally exposed identifier, stable across the
	// product's lifetime and usable in line-item references.
	PublicID id.ID `db:"product_id" json:"product_id"`

	CreatedBy id.ID `db:"created_by" json:"createdBy"`

	Name string `db:"name" json:"name"`

	// Quantity is the on-hand stock. Mutated only by direct edits and
	// by sale reservation/restoration.
	Quantity int64 `db:"quantity" json:"quantity"`

	CostPrice    types.Money `db:"cost_price" json:"cost_price"`
	SellingPrice types.Money `db:"selling_price" json:"selling_price"`

	Supplier    Supplier `db:"supplier" json:"supplier"`
	Category    *string  `db:"category" json:"category,omitempty"`
	Description *string  `db:"description" json:"description,omitempty"`
	ImageURL    *string  `db:"image_url" json:"image_url,omitempty"`

	DeletionMark bool `db:"deletion_mark" json:"-"`

	// Version for optimistic locking (incremented on each update).
	Version int `db:"version" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// New creates a product with generated identifiers. Selling price
// defaults to cost price with the standard margin unless set later.
func New(createdBy id.ID, name string, quantity int64, costPrice types.Money, supplier Supplier) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:           id.New(),
		PublicID:     id.New(),
		CreatedBy:    createdBy,
		Name:         name,
		Quantity:     quantity,
		CostPrice:    costPrice,
		SellingPrice: DefaultSellingPrice(costPrice),
		Supplier:     supplier,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DefaultSellingPrice returns cost price with the standard 20% margin,
// rounded to two decimals.
func DefaultSellingPrice(costPrice types.Money) types.Money {
	return types.Round2(costPrice.Mul(DefaultMarginRate))
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if len(p.Name) < 2 || len(p.Name) > 100 {
		return apperror.NewValidation("name must be between 2 and 100 characters").
			WithDetail("field", "name")
	}
	if p.Quantity < 0 {
		return apperror.NewValidation("quantity must be a non-negative number").
			WithDetail("field", "quantity")
	}
	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price must be a non-negative number").
			WithDetail("field", "cost_price")
	}
	if p.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price must be a non-negative number").
			WithDetail("field", "selling_price")
	}
	if !isValidSupplier(p.Supplier) {
		return apperror.NewValidation("invalid supplier").
			WithDetail("field", "supplier").
			WithDetail("value", string(p.Supplier))
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
	p.Version++
}

func isValidSupplier(s Supplier) bool {
	switch s {
	case SupplierFouani, SupplierSomotex, SupplierGuangzhou:
		return true
	}
	return false
}
