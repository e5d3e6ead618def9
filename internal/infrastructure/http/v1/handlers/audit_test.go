package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/domain/sales"
	"berostock/internal/infrastructure/http/v1/dto"
	"berostock/internal/infrastructure/http/v1/middleware"
	"berostock/internal/infrastructure/storage/postgres"
)

type stubSaleResolver struct {
	view *sales.SaleView
}

func (s *stubSaleResolver) GetByRef(ctx context.Context, ref string) (*sales.SaleView, error) {
	if s.view == nil || (ref != s.view.ID.String() && ref != s.view.SaleID.String()) {
		return nil, apperror.NewNotFound("sale", ref)
	}
	return s.view, nil
}

type stubAuditTrail struct {
	entityID id.ID
	limit    int
	entries  []postgres.AuditEntry
}

func (s *stubAuditTrail) History(ctx context.Context, entityID id.ID, limit int) ([]postgres.AuditEntry, error) {
	s.entityID = entityID
	s.limit = limit
	return s.entries, nil
}

func newHistoryRouter(resolver SaleResolver, trail AuditTrail) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/sales/:ref/history", NewAuditHandler(resolver, trail).SaleHistory)
	return router
}

func TestSaleHistory_ResolvesRefToStorageKey(t *testing.T) {
	view := &sales.SaleView{ID: id.New(), SaleID: id.New()}
	trail := &stubAuditTrail{entries: []postgres.AuditEntry{
		{
			ID:        id.New(),
			Action:    "sale.update",
			UserEmail: "jane@berostock.test",
			Payload:   json.RawMessage(`{"version":2}`),
			CreatedAt: time.Now().UTC(),
		},
		{
			ID:        id.New(),
			Action:    "sale.create",
			CreatedAt: time.Now().UTC().Add(-time.Hour),
		},
	}}
	router := newHistoryRouter(&stubSaleResolver{view: view}, trail)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/"+view.SaleID.String()+"/history?limit=5", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The public reference resolves to the storage key before the
	// trail is read.
	assert.Equal(t, view.ID, trail.entityID)
	assert.Equal(t, 5, trail.limit)

	var resp dto.AuditHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "sale.update", resp.Items[0].Action)
	assert.JSONEq(t, `{"version":2}`, string(resp.Items[0].Payload))
}

func TestSaleHistory_DefaultsLimit(t *testing.T) {
	view := &sales.SaleView{ID: id.New(), SaleID: id.New()}
	trail := &stubAuditTrail{}
	router := newHistoryRouter(&stubSaleResolver{view: view}, trail)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/"+view.ID.String()+"/history", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, trail.limit)
}

func TestSaleHistory_UnknownSaleIsNotFound(t *testing.T) {
	router := newHistoryRouter(&stubSaleResolver{}, &stubAuditTrail{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/"+id.New().String()+"/history", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
