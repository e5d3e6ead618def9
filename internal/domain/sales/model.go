// Package sales provides the sale transaction engine: stock
// reservation, sale lifecycle (create/update/delete with compensating
// stock restoration) and role-aware query projection.
package sales

import (
	"context"
	"strings"
	"time"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/core/types"
)

// PaymentMode enumerates accepted modes of payment.
type PaymentMode string

const (
	PaymentCash     PaymentMode = "Cash"
	PaymentCard     PaymentMode = "Card"
	PaymentTransfer PaymentMode = "Transfer"
)

// DefaultCustomerName is used when no customer name is supplied.
const DefaultCustomerName = "Walk-in Customer"

// ParsePaymentMode validates a payment mode string, case-insensitively.
// "POS" is accepted as a legacy alias for Card.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch strings.ToLower(s) {
	case "cash":
		return PaymentCash, nil
	case "card", "pos":
		return PaymentCard, nil
	case "transfer":
		return PaymentTransfer, nil
	}
	return "", apperror.NewInvalidPaymentMode(s)
}

// LineItem is one requested product/quantity pair. ProductRef may be
// either the product's storage key or its public identifier.
type LineItem struct {
	ProductRef string `json:"product_id"`
	Quantity   int64  `json:"quantity"`
}

// SaleLine is a priced, reserved line within a stored sale. Prices are
// captured at the time of the mutating operation so historical totals
// do not shift when the catalog price changes later.
type SaleLine struct {
	LineID id.ID `db:"line_id" json:"-"`
	LineNo int   `db:"line_no" json:"-"`

	// ProductID is the product's storage key.
	ProductID id.ID `db:"product_id" json:"product_id"`
	Quantity  int64 `db:"quantity" json:"quantity"`

	CostPrice    types.Money `db:"cost_price" json:"cost_price"`
	SellingPrice types.Money `db:"selling_price" json:"selling_price"`

	// Amount is round2(selling_price * quantity).
	Amount types.Money `db:"amount" json:"amount"`

	// Profit is round2((selling_price - cost_price) * quantity).
	Profit types.Money `db:"profit" json:"profit"`
}

// Sale is an immutable-ish sale record. The public SaleID is distinct
// from the storage key and stable across the sale's lifetime; it is the
// identifier used in invoice links.
type Sale struct {
	ID     id.ID `db:"id" json:"id"`
	SaleID id.ID `db:"sale_id" json:"sale_id"`

	CreatedBy    id.ID  `db:"created_by" json:"createdBy"`
	CustomerName string `db:"customer_name" json:"customer_name"`

	TotalPrice  types.Money `db:"total_price" json:"total_price"`
	TotalProfit types.Money `db:"total_profit" json:"profit_made"`

	PaymentMode PaymentMode `db:"mode_of_payment" json:"mode_of_payment"`

	Version int `db:"version" json:"-"`

	DateOfSale time.Time `db:"date_of_sale" json:"date_of_sale"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`

	Lines []SaleLine `db:"-" json:"products"`
}

// NewSale creates a sale shell with generated identifiers. Lines and
// totals are filled in by the reservation phase.
func NewSale(createdBy id.ID, customerName string, mode PaymentMode) *Sale {
	if customerName == "" {
		customerName = DefaultCustomerName
	}
	now := time.Now().UTC()
	return &Sale{
		ID:           id.New(),
		SaleID:       id.New(),
		CreatedBy:    createdBy,
		CustomerName: customerName,
		TotalPrice:   types.Zero(),
		TotalProfit:  types.Zero(),
		PaymentMode:  mode,
		Version:      1,
		DateOfSale:   now,
		UpdatedAt:    now,
	}
}

// SetLines replaces the sale's line items and recomputes totals.
func (s *Sale) SetLines(lines []SaleLine) {
	s.Lines = lines
	total := types.Zero()
	profit := types.Zero()
	for _, line := range lines {
		total = total.Add(line.Amount)
		profit = profit.Add(line.Profit)
	}
	s.TotalPrice = types.Round2(total)
	s.TotalProfit = types.Round2(profit)
}

// Touch stamps the updated-at time and bumps the version.
func (s *Sale) Touch() {
	s.UpdatedAt = time.Now().UTC()
	s.Version++
}

// Validate checks stored-sale invariants.
func (s *Sale) Validate(ctx context.Context) error {
	if len(s.Lines) == 0 {
		return apperror.NewValidation("products array is required").WithDetail("field", "products")
	}
	seen := make(map[id.ID]struct{}, len(s.Lines))
	for _, line := range s.Lines {
		if line.Quantity < 1 {
			return apperror.NewInvalidQuantity(line.Quantity)
		}
		if _, dup := seen[line.ProductID]; dup {
			return apperror.NewDuplicateLineItem(line.ProductID.String())
		}
		seen[line.ProductID] = struct{}{}
	}
	if _, err := ParsePaymentMode(string(s.PaymentMode)); err != nil {
		return err
	}
	return nil
}
