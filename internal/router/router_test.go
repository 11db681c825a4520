package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/handler"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() http.Handler {
	logger := zerolog.Nop()
	catalog := service.NewCatalogService(nil, logger)
	orders := service.NewOrderService(nil, nil, "EUR", logger)
	return New(handler.NewMCPHandler(catalog, orders, logger), logger)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRouter_MCPRejectsNonPost(t *testing.T) {
	r := newTestRouter()

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/mcp", nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.JSONEq(t, `{"error": "Method not allowed"}`, rec.Body.String())
		})
	}
}

func TestRouter_MCPPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
