package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, status := range OrderStatuses() {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
	}

	invalid := []OrderStatus{"", "shipped", "PENDING_CONFIRMATION", "pending confirmation"}
	for _, status := range invalid {
		assert.False(t, status.Valid(), "expected %q to be invalid", status)
	}
}

func TestDomainError(t *testing.T) {
	err := NewProductNotFound("PZ999")
	assert.Equal(t, ErrCodeProductNotFound, err.Code)
	assert.Equal(t, "No product found with ID PZ999", err.Error())

	err = NewOrderNotFound("ORD-20250511-abc123")
	assert.Equal(t, ErrCodeOrderNotFound, err.Code)
	assert.Contains(t, err.Message, "ORD-20250511-abc123")
}
