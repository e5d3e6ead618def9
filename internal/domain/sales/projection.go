package sales

import (
	"time"

	"berostock/internal/core/appctx"
	"berostock/internal/core/id"
	"berostock/internal/core/types"
	"berostock/internal/domain/catalog/product"
)

// LineView is a projected sale line. Cost and per-line profit are only
// populated for privileged callers.
type LineView struct {
	ProductID    id.ID        `json:"product_id"`
	ProductName  string       `json:"product_name"`
	Quantity     int64        `json:"quantity"`
	SellingPrice types.Money  `json:"selling_price"`
	Amount       types.Money  `json:"amount"`
	CostPrice    *types.Money `json:"cost_price,omitempty"`
	Profit       *types.Money `json:"profit,omitempty"`
}

// SaleView is the role-projected shape of a sale handed to transport.
type SaleView struct {
	ID           id.ID        `json:"id"`
	SaleID       id.ID        `json:"sale_id"`
	CustomerName string       `json:"customer_name"`
	Products     []LineView   `json:"products"`
	TotalPrice   types.Money  `json:"total_price"`
	ProfitMade   *types.Money `json:"profit_made,omitempty"`
	PaymentMode  PaymentMode  `json:"mode_of_payment"`
	SoldBy       string       `json:"sold_by"`
	DateOfSale   time.Time    `json:"date_of_sale"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Project renders a sale for the given role. Staff never see cost
// prices or profit figures. Product names and public identifiers come
// from the catalog snapshot; a product deleted since the sale keeps an
// empty name and falls back to the stored key.
func Project(s *Sale, products map[id.ID]*product.Product, soldBy string, role appctx.Role) SaleView {
	view := SaleView{
		ID:           s.ID,
		SaleID:       s.SaleID,
		CustomerName: s.CustomerName,
		TotalPrice:   s.TotalPrice,
		PaymentMode:  s.PaymentMode,
		SoldBy:       soldBy,
		DateOfSale:   s.DateOfSale,
		UpdatedAt:    s.UpdatedAt,
		Products:     make([]LineView, 0, len(s.Lines)),
	}

	privileged := role.IsPrivileged()
	if privileged {
		profit := s.TotalProfit
		view.ProfitMade = &profit
	}

	for _, line := range s.Lines {
		lv := LineView{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			SellingPrice: line.SellingPrice,
			Amount:       line.Amount,
		}
		if p, ok := products[line.ProductID]; ok {
			lv.ProductID = p.PublicID
			lv.ProductName = p.Name
		}
		if privileged {
			cost := line.CostPrice
			lineProfit := line.Profit
			lv.CostPrice = &cost
			lv.Profit = &lineProfit
		}
		view.Products = append(view.Products, lv)
	}

	return view
}
