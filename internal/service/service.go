package service

import (
	"context"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
)

// CatalogService defines operations over the product catalogue.
type CatalogService interface {
	// ListAvailableProducts retrieves all in-stock products. An empty
	// catalogue yields an empty slice, never an error; a store failure is
	// a STORE_UNAVAILABLE domain error, never fabricated data.
	ListAvailableProducts(ctx context.Context) ([]model.Product, error)
}

// OrderService defines operations over the order lifecycle.
type OrderService interface {
	// CreateOrder prices and persists a new order. Each requested product
	// is resolved against the catalogue before any write; an unknown
	// product aborts with PRODUCT_NOT_FOUND and leaves no partial order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// ListOrders retrieves orders, optionally filtered by an exact status
	// match. An empty status means every order.
	ListOrders(ctx context.Context, status string) ([]model.Order, error)

	// GetOrder retrieves a single order, failing ORDER_NOT_FOUND when
	// absent.
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)

	// UpdateOrderStatus writes a new status value. Any recognised status
	// may be set at any time; transition legality is not enforced.
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.OrderStatusUpdate, error)
}
