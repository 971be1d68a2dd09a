package service

// CreateIntentRequest is the checkout intent-creation payload. Amount is in
// major currency units (e.g. 49.99 EUR).
type CreateIntentRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// CreateIntentResponse is returned to the client so it can complete payment
// against the processor directly
type CreateIntentResponse struct {
	ClientSecret       string   `json:"clientSecret"`
	PaymentIntentID    string   `json:"paymentIntentId"`
	IsMock             bool     `json:"isMock"`
	PaymentMethodTypes []string `json:"paymentMethodTypes"`
}

// ConfirmPaymentRequest asks the server to verify the intent with the
// processor and finalize the order
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// ConfirmPaymentResponse reports the settlement outcome
type ConfirmPaymentResponse struct {
	Success         bool   `json:"success"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// RegisterRequest is the account registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the sign-in payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued session token
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
