package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"github.com/printhaus/storefront/internal/cart"
	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/internal/payment"
	"github.com/printhaus/storefront/internal/repository"
	"github.com/printhaus/storefront/pkg/errors"
)

// DefaultCurrency is used when the client omits the currency code
const DefaultCurrency = "eur"

type checkoutService struct {
	processor payment.Processor
	repos     *repository.Repositories
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(processor payment.Processor, repos *repository.Repositories, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		processor: processor,
		repos:     repos,
		logger:    logger,
	}
}

// ToMinorUnits converts a major-unit amount to minor units (cents) by
// decimal rounding. 49.99 becomes 4999; a stray float tail never silently
// drops a cent.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateIntent validates the request and opens a payment intent with the
// processor. The checkout attempt moves Created -> Pending on success.
func (s *checkoutService) CreateIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResponse, error) {
	if req.Amount <= 0 {
		return nil, &errors.ErrValidation{Field: "amount", Message: "must be greater than zero"}
	}

	code := strings.ToLower(strings.TrimSpace(req.Currency))
	if code == "" {
		code = DefaultCurrency
	}
	if _, err := currency.ParseISO(code); err != nil {
		return nil, &errors.ErrValidation{Field: "currency", Message: "unknown ISO 4217 code"}
	}

	status := domain.CheckoutStatusCreated
	intent, err := s.processor.CreateIntent(ctx, payment.CreateIntentParams{
		Amount:   ToMinorUnits(req.Amount),
		Currency: code,
		Metadata: req.Metadata,
	})
	if err != nil {
		s.logger.Error("Failed to create payment intent",
			zap.String("currency", code),
			zap.Error(err),
		)
		return nil, err
	}

	if !status.CanTransitionTo(domain.CheckoutStatusPending) {
		return nil, &errors.ErrInvalidStateTransition{From: status, To: domain.CheckoutStatusPending}
	}

	s.logger.Info("Payment intent created",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount_minor", intent.Amount),
		zap.String("currency", intent.Currency),
		zap.Bool("is_mock", s.processor.IsMock()),
	)

	return &CreateIntentResponse{
		ClientSecret:       intent.ClientSecret,
		PaymentIntentID:    intent.ID,
		IsMock:             s.processor.IsMock(),
		PaymentMethodTypes: intent.PaymentMethodTypes,
	}, nil
}

// ConfirmParams identifies the intent being confirmed and the cart snapshot
// it pays for
type ConfirmParams struct {
	PaymentIntentID string
	Snapshot        cart.State
	UserID          *uuid.UUID
	CustomerEmail   string
}

// Confirm retrieves the intent from the processor and, when it has
// succeeded, settles the checkout: the cart snapshot becomes a persistent
// order. Any other intent status leaves the attempt Pending so the caller
// can retry after the customer completes payment.
func (s *checkoutService) Confirm(ctx context.Context, params ConfirmParams) (*ConfirmPaymentResponse, error) {
	if params.PaymentIntentID == "" {
		return nil, &errors.ErrValidation{Field: "paymentIntentId", Message: "must not be empty"}
	}

	status := domain.CheckoutStatusPending
	if !status.CanTransitionTo(domain.CheckoutStatusConfirming) {
		return nil, &errors.ErrInvalidStateTransition{From: status, To: domain.CheckoutStatusConfirming}
	}

	intent, err := s.processor.RetrieveIntent(ctx, params.PaymentIntentID)
	if err != nil {
		s.logger.Error("Failed to retrieve payment intent",
			zap.String("intent_id", params.PaymentIntentID),
			zap.Error(err),
		)
		return nil, err
	}

	if intent.Status != payment.IntentStatusSucceeded {
		// Back to Pending: retryable from the caller's perspective
		return nil, &errors.ErrPaymentNotCompleted{
			IntentID: intent.ID,
			Status:   string(intent.Status),
		}
	}

	if err := s.settle(ctx, intent, params); err != nil {
		return nil, err
	}

	s.logger.Info("Checkout settled",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount_minor", intent.Amount),
	)

	return &ConfirmPaymentResponse{
		Success:         true,
		PaymentIntentID: intent.ID,
	}, nil
}

// settle records the order. Confirming the same intent twice keeps the
// first order instead of writing a duplicate.
func (s *checkoutService) settle(ctx context.Context, intent *payment.Intent, params ConfirmParams) error {
	if existing, err := s.repos.Order.GetByPaymentIntentID(ctx, intent.ID); err == nil && existing != nil {
		return nil
	}

	order := &domain.Order{
		UserID:          params.UserID,
		PaymentIntentID: intent.ID,
		Status:          domain.OrderStatusPaid,
		Currency:        intent.Currency,
		AmountMinor:     intent.Amount,
		Total:           params.Snapshot.Total,
		CustomerEmail:   params.CustomerEmail,
	}

	items := make([]*domain.OrderItem, 0, len(params.Snapshot.Items))
	for _, line := range params.Snapshot.Items {
		items = append(items, &domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Frame:     line.Frame,
		})
	}

	if err := s.repos.Order.Create(ctx, order, items); err != nil {
		s.logger.Error("Failed to persist order",
			zap.String("intent_id", intent.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
