package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"berostock/internal/core/appctx"
	"berostock/internal/core/id"
	"berostock/internal/domain/sales"
	"berostock/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale lifecycle endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sales.Service

	// invoiceBaseURL is the public origin used in invoice links.
	invoiceBaseURL string
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(service *sales.Service, invoiceBaseURL string) *SaleHandler {
	return &SaleHandler{
		BaseHandler:    NewBaseHandler(),
		service:        service,
		invoiceBaseURL: invoiceBaseURL,
	}
}

// Create handles POST /sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	view, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromSaleView(view, h.invoiceBaseURL))
}

// Get handles GET /sales/:ref. The reference may be the sale's storage
// key or its public identifier.
func (h *SaleHandler) Get(c *gin.Context) {
	view, err := h.service.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSaleView(view, h.invoiceBaseURL))
}

// Update handles PUT /sales/:ref.
func (h *SaleHandler) Update(c *gin.Context) {
	var req dto.UpdateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	view, err := h.service.Update(c.Request.Context(), c.Param("ref"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSaleView(view, h.invoiceBaseURL))
}

// Delete handles DELETE /sales/:ref.
func (h *SaleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("ref")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /sales.
func (h *SaleHandler) List(c *gin.Context) {
	out, err := h.service.List(c.Request.Context(), h.listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSaleList(out, h.invoiceBaseURL))
}

// Export handles GET /sales/export, streaming one CSV row per sale
// line item.
func (h *SaleHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.service.Export(ctx, h.listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	privileged := appctx.GetRole(ctx).IsPrivileged()

	w := csv.NewWriter(c.Writer)
	header := []string{
		"sale_id", "date_of_sale", "customer_name", "product_id", "product_name",
		"quantity", "selling_price", "amount", "mode_of_payment", "sold_by",
	}
	if privileged {
		header = append(header, "cost_price", "profit")
	}
	_ = w.Write(header)

	for _, row := range rows {
		record := []string{
			row.SaleID.String(),
			row.DateOfSale.UTC().Format(time.RFC3339),
			row.CustomerName,
			row.ProductID.String(),
			row.ProductName,
			strconv.FormatInt(row.Quantity, 10),
			row.SellingPrice.StringFixed(2),
			row.Amount.StringFixed(2),
			string(row.PaymentMode),
			row.SoldBy,
		}
		if privileged {
			cost, profit := "", ""
			if row.CostPrice != nil {
				cost = row.CostPrice.StringFixed(2)
			}
			if row.Profit != nil {
				profit = row.Profit.StringFixed(2)
			}
			record = append(record, cost, profit)
		}
		_ = w.Write(record)
	}
	w.Flush()
}

func (h *SaleHandler) listFilter(c *gin.Context) sales.ListFilter {
	filter := sales.ListFilter{
		Page:        h.ParseIntQuery(c, "page", 1),
		Limit:       h.ParseIntQuery(c, "limit", 0),
		Search:      c.Query("search"),
		PaymentMode: sales.PaymentMode(c.Query("mode_of_payment")),
	}
	if ref := c.Query("product_id"); ref != "" {
		if pid, err := id.Parse(ref); err == nil {
			filter.ProductID = pid
		}
	}
	if ref := c.Query("created_by"); ref != "" {
		if uid, err := id.Parse(ref); err == nil {
			filter.CreatedBy = uid
		}
	}
	if from := c.Query("dateFrom"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("dateTo"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.DateTo = &t
		}
	}
	return filter
}
