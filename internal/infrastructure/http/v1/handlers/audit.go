package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"berostock/internal/core/id"
	"berostock/internal/domain/sales"
	"berostock/internal/infrastructure/http/v1/dto"
	"berostock/internal/infrastructure/storage/postgres"
)

// SaleResolver resolves a sale reference for the current caller.
type SaleResolver interface {
	GetByRef(ctx context.Context, ref string) (*sales.SaleView, error)
}

// AuditTrail reads the recorded mutations of an entity, newest first.
type AuditTrail interface {
	History(ctx context.Context, entityID id.ID, limit int) ([]postgres.AuditEntry, error)
}

// AuditHandler serves audit trails.
type AuditHandler struct {
	*BaseHandler
	sales SaleResolver
	trail AuditTrail
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(sales SaleResolver, trail AuditTrail) *AuditHandler {
	return &AuditHandler{
		BaseHandler: NewBaseHandler(),
		sales:       sales,
		trail:       trail,
	}
}

// SaleHistory handles GET /sales/:ref/history. The reference may be
// the sale's storage key or its public identifier.
func (h *AuditHandler) SaleHistory(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.sales.GetByRef(ctx, c.Param("ref"))
	if err != nil {
		h.Error(c, err)
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	entries, err := h.trail.History(ctx, view.ID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.AuditEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			UserID:    e.UserID,
			UserEmail: e.UserEmail,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		}
	}
	h.OK(c, dto.AuditHistoryResponse{Items: items, TotalCount: len(items)})
}
