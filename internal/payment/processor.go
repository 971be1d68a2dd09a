package payment

import "context"

// IntentStatus is the processor-side lifecycle of a payment intent
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusFailed                IntentStatus = "failed"
)

// Intent models the processor's payment intent contract. Amount is always a
// count of minor currency units.
type Intent struct {
	ID                 string
	ClientSecret       string
	Status             IntentStatus
	Amount             int64
	Currency           string
	Metadata           map[string]string
	PaymentMethodTypes []string
}

// CreateIntentParams carries a create-intent request. Amount is already in
// minor units; major-unit conversion belongs to the caller.
type CreateIntentParams struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Processor is the payment capability: create an intent, then look it up to
// learn whether the customer completed payment. The live client and the mock
// implement the same shapes so callers never branch on the mode, beyond
// surfacing IsMock for diagnostics.
type Processor interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	IsMock() bool
}
