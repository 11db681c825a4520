package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure carrying a stable error code. The
// dispatcher renders it into the response envelope instead of surfacing a
// transport-level fault.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports a malformed request, rejected before any store
// access.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewProductNotFound reports a requested product id with no catalogue entry.
func NewProductNotFound(productID string) *DomainError {
	return NewDomainError(ErrCodeProductNotFound, fmt.Sprintf("No product found with ID %s", productID))
}

// NewOrderNotFound reports an order id with no record.
func NewOrderNotFound(orderID string) *DomainError {
	return NewDomainError(ErrCodeOrderNotFound, fmt.Sprintf("No order found with ID %s", orderID))
}

// NewStoreUnavailable reports a transient backend failure, carrying the
// underlying message.
func NewStoreUnavailable(err error) *DomainError {
	return NewDomainError(ErrCodeStoreUnavailable, err.Error())
}
