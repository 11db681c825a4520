package repository

import (
	"context"
	"time"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
)

// Secondary index names, one per table.
const (
	inStockIndex = "InStockIndex"
	statusIndex  = "StatusIndex"
)

// ProductRepository defines the interface for product data access.
// Products are reference data: there is no write operation here beyond what
// seeding tooling does directly against the store.
type ProductRepository interface {
	// GetByID retrieves a single product. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// ListInStock retrieves all products currently in stock via the
	// in-stock secondary index.
	ListInStock(ctx context.Context) ([]model.Product, error)
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists a new order. A single write; no partial state on
	// failure.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// ListAll retrieves every order. Full table scan; acceptable for an
	// internal admin operation on a small dataset.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListByStatus retrieves orders with an exact status match via the
	// status secondary index.
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	// UpdateStatus sets status and updated_at on an existing order and
	// returns the updated record. Returns (nil, nil) when the order does
	// not exist.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) (*model.Order, error)
}
