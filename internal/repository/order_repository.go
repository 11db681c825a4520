package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/store"

	"github.com/rs/zerolog"
)

// orderRepository implements OrderRepository against the record store.
type orderRepository struct {
	store  store.Store
	table  string
	logger zerolog.Logger
}

// NewOrderRepository creates a store-backed order repository.
func NewOrderRepository(s store.Store, table string, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		store:  s,
		table:  table,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create persists a new order with a single put.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	if err := r.store.Put(ctx, r.table, order); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to persist order")
		return fmt.Errorf("failed to persist order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.OrderID).Msg("order persisted")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.store.Get(ctx, r.table, "order_id", id, &o)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &o, nil
}

// ListAll retrieves every order with a full table scan.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.store.Scan(ctx, r.table, &orders); err != nil {
		r.logger.Error().Err(err).Msg("failed to scan orders")
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}

	r.logger.Debug().Int("count", len(orders)).Msg("retrieved all orders")

	return orders, nil
}

// ListByStatus retrieves orders with an exact status match via the StatusIndex.
func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := r.store.QueryIndex(ctx, r.table, statusIndex, "status", string(status), &orders)
	if err != nil {
		r.logger.Error().Err(err).Str("status", string(status)).Msg("failed to query orders by status")
		return nil, fmt.Errorf("failed to query orders by status: %w", err)
	}

	r.logger.Debug().
		Str("status", string(status)).
		Int("count", len(orders)).
		Msg("retrieved orders by status")

	return orders, nil
}

// UpdateStatus sets status and updated_at on an existing order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) (*model.Order, error) {
	fields := map[string]any{
		"status":     string(status),
		"updated_at": updatedAt,
	}

	var updated model.Order
	err := r.store.UpdateFields(ctx, r.table, "order_id", id, fields, &updated)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.logger.Debug().Str("order_id", id).Msg("order not found for status update")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	r.logger.Debug().
		Str("order_id", id).
		Str("status", string(status)).
		Msg("order status updated")

	return &updated, nil
}
