package domain

// OrderStatus represents the payment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

// CheckoutStatus tracks a single checkout attempt through the payment
// intent handshake
type CheckoutStatus string

const (
	CheckoutStatusCreated    CheckoutStatus = "CREATED"
	CheckoutStatusPending    CheckoutStatus = "PENDING"
	CheckoutStatusConfirming CheckoutStatus = "CONFIRMING"
	CheckoutStatusSettled    CheckoutStatus = "SETTLED"
	CheckoutStatusFailed     CheckoutStatus = "FAILED"
)

func (s CheckoutStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the checkout attempt can progress further
func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusSettled || s == CheckoutStatusFailed
}

// CanTransitionTo checks if a checkout status transition is valid.
// Confirming may fall back to Pending when the customer has not finished
// paying yet, so confirmation stays retryable.
func (s CheckoutStatus) CanTransitionTo(newStatus CheckoutStatus) bool {
	switch s {
	case CheckoutStatusCreated:
		return newStatus == CheckoutStatusPending || newStatus == CheckoutStatusFailed
	case CheckoutStatusPending:
		return newStatus == CheckoutStatusConfirming || newStatus == CheckoutStatusFailed
	case CheckoutStatusConfirming:
		return newStatus == CheckoutStatusSettled ||
			newStatus == CheckoutStatusPending ||
			newStatus == CheckoutStatusFailed
	case CheckoutStatusSettled, CheckoutStatusFailed:
		return false // Terminal states
	default:
		return false
	}
}
