package dto

import (
	"fmt"
	"time"

	"berostock/internal/core/types"
	"berostock/internal/domain/sales"
)

// --- Request DTOs ---

// SaleLineRequest is one requested product/quantity pair. ProductID
// accepts either the product's storage key or its public identifier.
type SaleLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// CreateSaleRequest for recording sales.
type CreateSaleRequest struct {
	CustomerName  string            `json:"customer_name,omitempty"`
	ModeOfPayment string            `json:"mode_of_payment" binding:"required"`
	Products      []SaleLineRequest `json:"products" binding:"required,min=1,dive"`
}

// ToInput converts to domain input.
func (r *CreateSaleRequest) ToInput() sales.CreateInput {
	return sales.CreateInput{
		CustomerName: r.CustomerName,
		PaymentMode:  r.ModeOfPayment,
		Items:        toLineItems(r.Products),
	}
}

// UpdateSaleRequest for rewriting sales. Products, when present,
// replace the sale's lines entirely.
type UpdateSaleRequest struct {
	CustomerName  *string           `json:"customer_name,omitempty"`
	ModeOfPayment *string           `json:"mode_of_payment,omitempty"`
	Products      []SaleLineRequest `json:"products,omitempty"`
}

// ToInput converts to domain input.
func (r *UpdateSaleRequest) ToInput() sales.UpdateInput {
	in := sales.UpdateInput{
		CustomerName: r.CustomerName,
		PaymentMode:  r.ModeOfPayment,
	}
	if r.Products != nil {
		in.Items = toLineItems(r.Products)
	}
	return in
}

func toLineItems(lines []SaleLineRequest) []sales.LineItem {
	items := make([]sales.LineItem, len(lines))
	for i, line := range lines {
		items[i] = sales.LineItem{ProductRef: line.ProductID, Quantity: line.Quantity}
	}
	return items
}

// --- Response DTOs ---

// SaleLineResponse represents a projected sale line.
type SaleLineResponse struct {
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	Quantity     int64        `json:"quantity"`
	SellingPrice types.Money  `json:"selling_price"`
	Amount       types.Money  `json:"amount"`
	CostPrice    *types.Money `json:"cost_price,omitempty"`
	Profit       *types.Money `json:"profit,omitempty"`
}

// SaleResponse represents a projected sale.
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleID        string             `json:"sale_id"`
	CustomerName  string             `json:"customer_name"`
	Products      []SaleLineResponse `json:"products"`
	TotalPrice    types.Money        `json:"total_price"`
	ProfitMade    *types.Money       `json:"profit_made,omitempty"`
	ModeOfPayment string             `json:"mode_of_payment"`
	SoldBy        string             `json:"sold_by"`
	InvoiceURL    string             `json:"invoice_url"`
	DateOfSale    time.Time          `json:"date_of_sale"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// FromSaleView creates a response from a projected sale. The invoice
// link is built from the sale's public identifier.
func FromSaleView(v *sales.SaleView, baseURL string) *SaleResponse {
	lines := make([]SaleLineResponse, len(v.Products))
	for i, line := range v.Products {
		lines[i] = SaleLineResponse{
			ProductID:    line.ProductID.String(),
			ProductName:  line.ProductName,
			Quantity:     line.Quantity,
			SellingPrice: line.SellingPrice,
			Amount:       line.Amount,
			CostPrice:    line.CostPrice,
			Profit:       line.Profit,
		}
	}
	return &SaleResponse{
		ID:            v.ID.String(),
		SaleID:        v.SaleID.String(),
		CustomerName:  v.CustomerName,
		Products:      lines,
		TotalPrice:    v.TotalPrice,
		ProfitMade:    v.ProfitMade,
		ModeOfPayment: string(v.PaymentMode),
		SoldBy:        v.SoldBy,
		InvoiceURL:    fmt.Sprintf("%s/invoices/%s", baseURL, v.SaleID),
		DateOfSale:    v.DateOfSale,
		UpdatedAt:     v.UpdatedAt,
	}
}

// SaleListResponse is a page of sales with aggregates over the whole
// filtered set.
type SaleListResponse struct {
	Success     bool            `json:"success"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	Pages       int             `json:"pages"`
	TotalSales  types.Money     `json:"totalSales"`
	TotalProfit *types.Money    `json:"totalProfit,omitempty"`
	Data        []*SaleResponse `json:"data"`
}

// FromSaleList creates a response from a projected page of sales.
func FromSaleList(out *sales.ListOutput, baseURL string) *SaleListResponse {
	data := make([]*SaleResponse, len(out.Sales))
	for i := range out.Sales {
		data[i] = FromSaleView(&out.Sales[i], baseURL)
	}
	return &SaleListResponse{
		Success:     true,
		Total:       out.Total,
		Page:        out.Page,
		Pages:       out.Pages,
		TotalSales:  out.TotalSales,
		TotalProfit: out.TotalProfit,
		Data:        data,
	}
}
