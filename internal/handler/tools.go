package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/mcp"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"

	"github.com/go-playground/validator/v10"
)

// dataEnvelope wraps every successful tool payload.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorEnvelope wraps every failed tool payload: a stable error code and a
// human-readable message.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const orderReceivedMessage = "Order received. Awaiting payment confirmation and delivery."

// Tool argument schemas, mirrored from the tool parameter structs.
var (
	emptySchema = json.RawMessage(`{"type":"object","properties":{}}`)

	createOrderSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"customer_name": {"type": "string", "description": "Name or fun alias of the customer ordering the protein bars"},
			"desk_location": {"type": "string", "description": "Desk location where the protein bars should be delivered"},
			"items": {
				"type": "array",
				"description": "List of protein bars and quantities to order",
				"items": {
					"type": "object",
					"properties": {
						"product_id": {"type": "string", "description": "ID of the protein bar"},
						"quantity": {"type": "integer", "minimum": 1, "description": "Number of items to order"}
					},
					"required": ["product_id", "quantity"]
				}
			},
			"payment_details": {
				"type": "object",
				"description": "Details about how payment was made",
				"properties": {
					"method": {"type": "string", "description": "Payment method (e.g., \"MBWAY\")"},
					"notes": {"type": "string", "description": "Payment notes or confirmation"}
				},
				"required": ["method", "notes"]
			}
		},
		"required": ["customer_name", "desk_location", "items", "payment_details"]
	}`)

	listOrdersSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"status": {
				"type": "string",
				"enum": ["pending_confirmation", "payment_verified", "preparing_delivery", "delivered", "cancelled"],
				"description": "Filter orders by status (e.g., \"pending_confirmation\", \"delivered\")"
			}
		}
	}`)

	getOrderSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"order_id": {"type": "string", "description": "ID of the order to retrieve"}
		},
		"required": ["order_id"]
	}`)

	updateOrderStatusSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"order_id": {"type": "string", "description": "ID of the order to update"},
			"status": {
				"type": "string",
				"enum": ["pending_confirmation", "payment_verified", "preparing_delivery", "delivered", "cancelled"],
				"description": "New status for the order"
			}
		},
		"required": ["order_id", "status"]
	}`)
)

// toolList describes the five callable tools.
func toolList() []mcp.Tool {
	return []mcp.Tool{
		{Name: "list-products", Description: "Get a list of available protein bars", InputSchema: emptySchema},
		{Name: "create-order", Description: "Submit a new protein bar order", InputSchema: createOrderSchema},
		{Name: "list-orders", Description: "Admin function to list protein bar orders", InputSchema: listOrdersSchema},
		{Name: "get-order", Description: "Admin function to view details of a specific order", InputSchema: getOrderSchema},
		{Name: "update-order-status", Description: "Admin function to update the status of an order", InputSchema: updateOrderStatusSchema},
	}
}

type listOrdersParams struct {
	Status string `json:"status" validate:"omitempty,oneof=pending_confirmation payment_verified preparing_delivery delivered cancelled"`
}

type getOrderParams struct {
	OrderID string `json:"order_id" validate:"required"`
}

type updateOrderStatusParams struct {
	OrderID string `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=pending_confirmation payment_verified preparing_delivery delivered cancelled"`
}

// callTool dispatches a tools/call request. Domain failures come back as an
// isError tool result so callers always receive a well-formed envelope; only
// an unknown tool name is a protocol-level error.
func (h *MCPHandler) callTool(ctx context.Context, params mcp.CallToolParams) (mcp.CallToolResult, *mcp.Error) {
	switch params.Name {
	case "list-products":
		return h.listProducts(ctx), nil
	case "create-order":
		return h.createOrder(ctx, params.Arguments), nil
	case "list-orders":
		return h.listOrders(ctx, params.Arguments), nil
	case "get-order":
		return h.getOrder(ctx, params.Arguments), nil
	case "update-order-status":
		return h.updateOrderStatus(ctx, params.Arguments), nil
	default:
		return mcp.CallToolResult{}, &mcp.Error{Code: mcp.CodeInvalidParams, Message: "Unknown tool: " + params.Name}
	}
}

func (h *MCPHandler) listProducts(ctx context.Context) mcp.CallToolResult {
	products, err := h.catalog.ListAvailableProducts(ctx)
	if err != nil {
		return h.errorResult(err)
	}
	return textResult(dataEnvelope{Data: products})
}

func (h *MCPHandler) createOrder(ctx context.Context, args json.RawMessage) mcp.CallToolResult {
	var req model.OrderRequest
	if err := unmarshalArguments(args, &req); err != nil {
		return h.errorResult(model.NewValidationError(err.Error()))
	}
	if err := h.checkParams(&req); err != nil {
		return h.errorResult(err)
	}

	order, err := h.orders.CreateOrder(ctx, &req)
	if err != nil {
		return h.errorResult(err)
	}

	return textResult(dataEnvelope{Data: model.OrderConfirmation{
		OrderID: order.OrderID,
		Status:  order.Status,
		Message: orderReceivedMessage,
	}})
}

func (h *MCPHandler) listOrders(ctx context.Context, args json.RawMessage) mcp.CallToolResult {
	var params listOrdersParams
	if err := unmarshalArguments(args, &params); err != nil {
		return h.errorResult(model.NewValidationError(err.Error()))
	}
	if err := h.checkParams(&params); err != nil {
		return h.errorResult(err)
	}

	orders, err := h.orders.ListOrders(ctx, params.Status)
	if err != nil {
		return h.errorResult(err)
	}
	return textResult(dataEnvelope{Data: orders})
}

func (h *MCPHandler) getOrder(ctx context.Context, args json.RawMessage) mcp.CallToolResult {
	var params getOrderParams
	if err := unmarshalArguments(args, &params); err != nil {
		return h.errorResult(model.NewValidationError(err.Error()))
	}
	if err := h.checkParams(&params); err != nil {
		return h.errorResult(err)
	}

	order, err := h.orders.GetOrder(ctx, params.OrderID)
	if err != nil {
		return h.errorResult(err)
	}
	return textResult(dataEnvelope{Data: order})
}

func (h *MCPHandler) updateOrderStatus(ctx context.Context, args json.RawMessage) mcp.CallToolResult {
	var params updateOrderStatusParams
	if err := unmarshalArguments(args, &params); err != nil {
		return h.errorResult(model.NewValidationError(err.Error()))
	}
	if err := h.checkParams(&params); err != nil {
		return h.errorResult(err)
	}

	update, err := h.orders.UpdateOrderStatus(ctx, params.OrderID, model.OrderStatus(params.Status))
	if err != nil {
		return h.errorResult(err)
	}
	return textResult(dataEnvelope{Data: update})
}

// unmarshalArguments decodes tool arguments, treating absent arguments as an
// empty object so required-field validation produces the error message.
func unmarshalArguments(args json.RawMessage, out any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, out); err != nil {
		return fmt.Errorf("malformed tool arguments: %w", err)
	}
	return nil
}

// checkParams validates a parameter struct before any service call.
func (h *MCPHandler) checkParams(v any) error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on the %q rule", fe.Namespace(), fe.Tag()))
		}
		return model.NewValidationError(strings.Join(msgs, "; "))
	}
	return model.NewValidationError(err.Error())
}

// textResult renders a payload as a single text content item.
func textResult(v any) mcp.CallToolResult {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.CallToolResult{
			Content: []mcp.TextContent{mcp.NewTextContent(`{"error":"INTERNAL_ERROR","message":"failed to encode result"}`)},
			IsError: true,
		}
	}
	return mcp.CallToolResult{Content: []mcp.TextContent{mcp.NewTextContent(string(text))}}
}

// errorResult renders a failure as an isError tool result carrying the
// error code and message, never a transport fault.
func (h *MCPHandler) errorResult(err error) mcp.CallToolResult {
	envelope := errorEnvelope{Error: model.ErrCodeInternalError, Message: err.Error()}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		envelope.Error = domainErr.Code
		envelope.Message = domainErr.Message
	}

	h.logger.Warn().Str("code", envelope.Error).Str("message", envelope.Message).Msg("tool call failed")

	text, marshalErr := json.Marshal(envelope)
	if marshalErr != nil {
		text = []byte(`{"error":"INTERNAL_ERROR","message":"failed to encode error"}`)
	}
	return mcp.CallToolResult{Content: []mcp.TextContent{mcp.NewTextContent(string(text))}, IsError: true}
}
