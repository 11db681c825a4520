package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/mcp"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Server identity reported on initialize.
const (
	serverName    = "protein-bar-ordering-mcp-server"
	serverVersion = "1.0.0"
)

// MCPHandler is the request dispatcher: it decodes JSON-RPC envelopes from
// the streamable HTTP transport, validates tool parameters, invokes the
// domain services and renders results and domain errors into a uniform
// response shape. Each request is independent and stateless.
type MCPHandler struct {
	catalog  service.CatalogService
	orders   service.OrderService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewMCPHandler creates a new dispatcher.
func NewMCPHandler(catalog service.CatalogService, orders service.OrderService, logger zerolog.Logger) *MCPHandler {
	v := validator.New()
	// Report JSON field names, not Go field names, in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &MCPHandler{
		catalog:  catalog,
		orders:   orders,
		validate: v,
		logger:   logger.With().Str("handler", "mcp").Logger(),
	}
}

// Handle handles POST /mcp requests.
func (h *MCPHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req mcp.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("unparseable request body")
		writeJSON(w, http.StatusBadRequest, mcp.NewErrorResponse(nil, mcp.CodeParseError, "Parse error"))
		return
	}

	if req.JSONRPC != "2.0" || req.Method == "" {
		writeJSON(w, http.StatusBadRequest, mcp.NewErrorResponse(req.ID, mcp.CodeInvalidRequest, "Invalid request"))
		return
	}

	h.logger.Debug().Str("method", req.Method).Msg("dispatching request")

	// Notifications expect no response body.
	if req.IsNotification() {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeJSON(w, http.StatusOK, h.dispatch(r.Context(), &req))
}

// dispatch routes a request to the matching protocol method.
func (h *MCPHandler) dispatch(ctx context.Context, req *mcp.Request) mcp.Response {
	switch req.Method {
	case "initialize":
		return mcp.NewResponse(req.ID, mcp.InitializeResult{
			ProtocolVersion: mcp.ProtocolVersion,
			Capabilities: mcp.ServerCapabilities{
				Tools:   &mcp.ToolsCapability{},
				Prompts: &mcp.PromptsCapability{},
				Logging: &struct{}{},
			},
			ServerInfo: mcp.Implementation{Name: serverName, Version: serverVersion},
		})

	case "ping":
		return mcp.NewResponse(req.ID, struct{}{})

	case "tools/list":
		return mcp.NewResponse(req.ID, mcp.ListToolsResult{Tools: toolList()})

	case "tools/call":
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
			return mcp.NewErrorResponse(req.ID, mcp.CodeInvalidParams, "Invalid tool call parameters")
		}
		result, rpcErr := h.callTool(ctx, params)
		if rpcErr != nil {
			return mcp.Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
		}
		return mcp.NewResponse(req.ID, result)

	case "prompts/list":
		return mcp.NewResponse(req.ID, mcp.ListPromptsResult{Prompts: promptList()})

	case "prompts/get":
		var params mcp.GetPromptParams
		if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
			return mcp.NewErrorResponse(req.ID, mcp.CodeInvalidParams, "Invalid prompt parameters")
		}
		result, rpcErr := getPrompt(params.Name)
		if rpcErr != nil {
			return mcp.Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
		}
		return mcp.NewResponse(req.ID, result)

	default:
		return mcp.NewErrorResponse(req.ID, mcp.CodeMethodNotFound, "Method not found: "+req.Method)
	}
}
