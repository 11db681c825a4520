package model

import "time"

// OrderStatus is an order's lifecycle state. The lifecycle is declared, not
// enforced: any of the five values may be written at any time via the
// update operation.
type OrderStatus string

const (
	StatusPendingConfirmation OrderStatus = "pending_confirmation"
	StatusPaymentVerified     OrderStatus = "payment_verified"
	StatusPreparingDelivery   OrderStatus = "preparing_delivery"
	StatusDelivered           OrderStatus = "delivered"
	StatusCancelled           OrderStatus = "cancelled"
)

// OrderStatuses lists every recognised status value.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPendingConfirmation,
		StatusPaymentVerified,
		StatusPreparingDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// Valid reports whether s is one of the recognised status values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPendingConfirmation, StatusPaymentVerified, StatusPreparingDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line item in an order. Name and PricePerItem are copied
// from the product at order time, so later catalogue price changes never
// retroactively affect existing orders.
type OrderItem struct {
	ProductID    string  `json:"product_id" dynamodbav:"product_id"`
	Name         string  `json:"name" dynamodbav:"name"`
	Quantity     int     `json:"quantity" dynamodbav:"quantity"`
	PricePerItem float64 `json:"price_per_item" dynamodbav:"price_per_item"`
}

// PaymentDetails records how payment was made. Free text, not verified.
type PaymentDetails struct {
	Method string `json:"method" dynamodbav:"method" validate:"required"`
	Notes  string `json:"notes" dynamodbav:"notes" validate:"required"`
}

// Order represents a customer order.
type Order struct {
	OrderID        string         `json:"order_id" dynamodbav:"order_id"`
	CustomerName   string         `json:"customer_name" dynamodbav:"customer_name"`
	DeskLocation   string         `json:"desk_location" dynamodbav:"desk_location"`
	Items          []OrderItem    `json:"items" dynamodbav:"items"`
	TotalPrice     float64        `json:"total_price" dynamodbav:"total_price"`
	Currency       string         `json:"currency" dynamodbav:"currency"`
	Status         OrderStatus    `json:"status" dynamodbav:"status"`
	PaymentDetails PaymentDetails `json:"payment_details" dynamodbav:"payment_details"`
	CreatedAt      time.Time      `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" dynamodbav:"updated_at"`
}

// OrderRequest is the payload for creating an order.
type OrderRequest struct {
	CustomerName   string             `json:"customer_name" validate:"required"`
	DeskLocation   string             `json:"desk_location" validate:"required"`
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentDetails PaymentDetails     `json:"payment_details"`
}

// OrderItemRequest is a single requested item in an order request.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderConfirmation is the response payload for a newly created order.
type OrderConfirmation struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Message string      `json:"message"`
}

// OrderStatusUpdate is the response payload for a status change.
type OrderStatusUpdate struct {
	OrderID   string      `json:"order_id"`
	NewStatus OrderStatus `json:"new_status"`
	UpdatedAt time.Time   `json:"updated_at"`
}
