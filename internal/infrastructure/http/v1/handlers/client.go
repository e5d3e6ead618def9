package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/domain/catalog/client"
	"berostock/internal/infrastructure/http/v1/dto"
)

// ClientHandler handles client directory endpoints.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(service *client.Service) *ClientHandler {
	return &ClientHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := client.New(req.Name, req.Email, req.Phone)
	entry.Address = req.Address

	if err := h.service.Create(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromClient(entry))
}

// Get handles GET /clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewNotFound("client", c.Param("id")))
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromClient(entry))
}

// Update handles PUT /clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewNotFound("client", c.Param("id")))
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if req.Name != nil {
		entry.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		entry.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		entry.Phone = *req.Phone
	}
	if req.Address != nil {
		entry.Address = *req.Address
	}
	entry.Touch()

	if err := h.service.Update(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromClient(entry))
}

// Delete handles DELETE /clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewNotFound("client", c.Param("id")))
		return
	}

	if err := h.service.Delete(c.Request.Context(), clientID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /clients.
func (h *ClientHandler) List(c *gin.Context) {
	filter := client.ListFilter{
		Search: c.Query("search"),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{
		Items:      dto.FromClients(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
