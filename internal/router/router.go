package router

import (
	"net/http"
	"time"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/handler"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// The timeout bounds every store round-trip made on behalf of a request.
func New(mcpHandler *handler.MCPHandler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(15 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	r.Post("/mcp", mcpHandler.Handle)

	// The MCP endpoint only speaks request/response POST.
	methodNotAllowed := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error": "Method not allowed"}`))
	}
	r.Get("/mcp", methodNotAllowed)
	r.Delete("/mcp", methodNotAllowed)

	return r
}
