package handlers

import (
	"github.com/gin-gonic/gin"

	"berostock/internal/domain/reports"
)

// ReportHandler handles sales report endpoints.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *reports.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Summary handles GET /reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
