package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    CheckoutStatus
		to      CheckoutStatus
		allowed bool
	}{
		{CheckoutStatusCreated, CheckoutStatusPending, true},
		{CheckoutStatusCreated, CheckoutStatusFailed, true},
		{CheckoutStatusCreated, CheckoutStatusSettled, false},
		{CheckoutStatusPending, CheckoutStatusConfirming, true},
		{CheckoutStatusConfirming, CheckoutStatusSettled, true},
		// Unfinished payment drops confirmation back to pending, retryable
		{CheckoutStatusConfirming, CheckoutStatusPending, true},
		{CheckoutStatusConfirming, CheckoutStatusFailed, true},
		{CheckoutStatusSettled, CheckoutStatusFailed, false},
		{CheckoutStatusFailed, CheckoutStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCheckoutStatus_IsTerminal(t *testing.T) {
	assert.True(t, CheckoutStatusSettled.IsTerminal())
	assert.True(t, CheckoutStatusFailed.IsTerminal())
	assert.False(t, CheckoutStatusPending.IsTerminal())
	assert.False(t, CheckoutStatusConfirming.IsTerminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPaid.IsValid())
	assert.True(t, OrderStatusPending.IsValid())
	assert.False(t, OrderStatus("SHIPPED").IsValid())
}
