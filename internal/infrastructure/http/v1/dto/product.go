package dto

import (
	"time"

	"berostock/internal/core/types"
	"berostock/internal/domain/catalog/product"
)

// --- Request DTOs ---

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Name         string       `json:"name" binding:"required,min=2,max=100"`
	Quantity     int64        `json:"quantity" binding:"gte=0"`
	CostPrice    types.Money  `json:"cost_price" binding:"required"`
	SellingPrice *types.Money `json:"selling_price,omitempty"`
	Supplier     string       `json:"supplier" binding:"required"`
	Category     *string      `json:"category,omitempty"`
	Description  *string      `json:"description,omitempty"`
	ImageURL     *string      `json:"image_url,omitempty"`
}

// ToInput converts to domain input.
func (r *CreateProductRequest) ToInput() product.CreateInput {
	return product.CreateInput{
		Name:         r.Name,
		Quantity:     r.Quantity,
		CostPrice:    r.CostPrice,
		SellingPrice: r.SellingPrice,
		Supplier:     product.Supplier(r.Supplier),
		Category:     r.Category,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
	}
}

// UpdateProductRequest for patching products. Nil fields are left
// unchanged.
type UpdateProductRequest struct {
	Name         *string      `json:"name,omitempty"`
	Quantity     *int64       `json:"quantity,omitempty"`
	CostPrice    *types.Money `json:"cost_price,omitempty"`
	SellingPrice *types.Money `json:"selling_price,omitempty"`
	Supplier     *string      `json:"supplier,omitempty"`
	Category     *string      `json:"category,omitempty"`
	Description  *string      `json:"description,omitempty"`
	ImageURL     *string      `json:"image_url,omitempty"`
}

// ToInput converts to domain input.
func (r *UpdateProductRequest) ToInput() product.UpdateInput {
	in := product.UpdateInput{
		Name:         r.Name,
		Quantity:     r.Quantity,
		CostPrice:    r.CostPrice,
		SellingPrice: r.SellingPrice,
		Category:     r.Category,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
	}
	if r.Supplier != nil {
		supplier := product.Supplier(*r.Supplier)
		in.Supplier = &supplier
	}
	return in
}

// --- Response DTOs ---

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID           string      `json:"id"`
	ProductID    string      `json:"product_id"`
	Name         string      `json:"name"`
	Quantity     int64       `json:"quantity"`
	CostPrice    types.Money `json:"cost_price"`
	SellingPrice types.Money `json:"selling_price"`
	Supplier     string      `json:"supplier"`
	Category     *string     `json:"category,omitempty"`
	Description  *string     `json:"description,omitempty"`
	ImageURL     *string     `json:"image_url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// FromProduct creates a response from a domain product.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID.String(),
		ProductID:    p.PublicID.String(),
		Name:         p.Name,
		Quantity:     p.Quantity,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Supplier:     string(p.Supplier),
		Category:     p.Category,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromProducts converts a list of domain products.
func FromProducts(items []*product.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(items))
	for i, p := range items {
		out[i] = FromProduct(p)
	}
	return out
}
