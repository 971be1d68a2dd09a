package errors

import "fmt"

// ErrValidation indicates a request failed input validation
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ErrUnauthorized indicates missing or invalid credentials
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrNotFound indicates a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrConflict indicates a uniqueness violation (e.g. duplicate registration)
type ErrConflict struct {
	Resource string
	Message  string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Message)
}

// ErrProcessor indicates the external payment processor failed or is
// misconfigured. The message comes from the processor; credentials are
// never included.
type ErrProcessor struct {
	Message string
}

func (e *ErrProcessor) Error() string {
	return fmt.Sprintf("payment processor error: %s", e.Message)
}

// ErrPaymentNotCompleted indicates the payment intent has not reached a
// successful status yet. The caller may retry after the customer completes
// payment.
type ErrPaymentNotCompleted struct {
	IntentID string
	Status   string
}

func (e *ErrPaymentNotCompleted) Error() string {
	return fmt.Sprintf("payment %s not completed: status is %s", e.IntentID, e.Status)
}

// ErrInvalidStateTransition indicates an illegal checkout/order status change
type ErrInvalidStateTransition struct {
	From fmt.Stringer
	To   fmt.Stringer
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
