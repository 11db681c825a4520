package service

import (
	"context"
	"fmt"
	"time"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	currency    string
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. All orders are priced in the
// given currency.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	currency string,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		currency:    currency,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder prices and persists a new order.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	// Resolve every product before the single write so a missing product
	// leaves no partial order behind. Name and price are copied at order
	// time; later catalogue changes must not affect this order.
	orderItems := make([]model.OrderItem, 0, len(req.Items))
	var totalPrice float64

	for _, item := range req.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to resolve product")
			return nil, model.NewStoreUnavailable(err)
		}
		if product == nil {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("order references unknown product")
			return nil, model.NewProductNotFound(item.ProductID)
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID:    product.ID,
			Name:         product.Name,
			Quantity:     item.Quantity,
			PricePerItem: product.Price,
		})
		totalPrice += product.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &model.Order{
		OrderID:        newOrderID(now),
		CustomerName:   req.CustomerName,
		DeskLocation:   req.DeskLocation,
		Items:          orderItems,
		TotalPrice:     totalPrice,
		Currency:       s.currency,
		Status:         model.StatusPendingConfirmation,
		PaymentDetails: req.PaymentDetails,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to create order")
		return nil, model.NewStoreUnavailable(err)
	}

	s.logger.Info().
		Str("order_id", order.OrderID).
		Int("item_count", len(orderItems)).
		Float64("total_price", totalPrice).
		Msg("order created")

	return order, nil
}

// ListOrders retrieves orders, optionally filtered by status.
func (s *orderService) ListOrders(ctx context.Context, status string) ([]model.Order, error) {
	var orders []model.Order
	var err error

	if status != "" {
		if !model.OrderStatus(status).Valid() {
			return nil, model.NewValidationError(fmt.Sprintf("unknown order status %q", status))
		}
		orders, err = s.orderRepo.ListByStatus(ctx, model.OrderStatus(status))
	} else {
		orders, err = s.orderRepo.ListAll(ctx)
	}

	if err != nil {
		s.logger.Error().Err(err).Str("status", status).Msg("failed to list orders")
		return nil, model.NewStoreUnavailable(err)
	}

	if orders == nil {
		orders = []model.Order{}
	}

	s.logger.Debug().Str("status", status).Int("count", len(orders)).Msg("listed orders")

	return orders, nil
}

// GetOrder retrieves a single order by its ID.
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if orderID == "" {
		return nil, model.NewValidationError("order_id is required")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to get order")
		return nil, model.NewStoreUnavailable(err)
	}

	if order == nil {
		return nil, model.NewOrderNotFound(orderID)
	}

	return order, nil
}

// UpdateOrderStatus writes a new status value on an existing order.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.OrderStatusUpdate, error) {
	if orderID == "" {
		return nil, model.NewValidationError("order_id is required")
	}
	if !status.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("unknown order status %q", status))
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to update order status")
		return nil, model.NewStoreUnavailable(err)
	}

	if updated == nil {
		return nil, model.NewOrderNotFound(orderID)
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("status", string(status)).
		Msg("order status updated")

	return &model.OrderStatusUpdate{
		OrderID:   updated.OrderID,
		NewStatus: updated.Status,
		UpdatedAt: updated.UpdatedAt,
	}, nil
}

// validateOrderRequest validates the order request. The dispatcher rejects
// malformed input before the service is called; this re-check keeps the
// service safe for other callers.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError("order request is required")
	}

	if req.CustomerName == "" {
		return model.NewValidationError("customer_name is required")
	}

	if req.DeskLocation == "" {
		return model.NewValidationError("desk_location is required")
	}

	if len(req.Items) == 0 {
		return model.NewValidationError("order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return model.NewValidationError(fmt.Sprintf("item %d: product_id is required", i))
		}
		if item.Quantity < 1 {
			return model.NewValidationError(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
	}

	return nil
}
