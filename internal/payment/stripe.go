package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/config"
	"github.com/printhaus/storefront/pkg/errors"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeProcessor talks to the Stripe payment-intents REST API
type StripeProcessor struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStripeProcessor creates a live processor client
func NewStripeProcessor(cfg config.PaymentConfig, logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{
		secretKey: strings.TrimSpace(cfg.SecretKey),
		baseURL:   stripeAPIBase,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (p *StripeProcessor) IsMock() bool { return false }

// intentPayload is the subset of the processor's intent object we consume
type intentPayload struct {
	ID                 string            `json:"id"`
	ClientSecret       string            `json:"client_secret"`
	Status             string            `json:"status"`
	Amount             int64             `json:"amount"`
	Currency           string            `json:"currency"`
	Metadata           map[string]string `json:"metadata"`
	PaymentMethodTypes []string          `json:"payment_method_types"`
}

type errorPayload struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent creates a payment intent with automatic payment-method
// negotiation enabled, accepting redirect-based methods.
func (p *StripeProcessor) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.Amount, 10))
	form.Set("currency", strings.ToLower(params.Currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("automatic_payment_methods[allow_redirects]", "always")
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	payload, err := p.do(ctx, http.MethodPost, "/payment_intents", form)
	if err != nil {
		return nil, err
	}
	return payload.toIntent(), nil
}

// RetrieveIntent fetches the current status of a payment intent
func (p *StripeProcessor) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	if id == "" {
		return nil, &errors.ErrValidation{Field: "paymentIntentId", Message: "must not be empty"}
	}
	payload, err := p.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return payload.toIntent(), nil
}

func (p *StripeProcessor) do(ctx context.Context, method, path string, form url.Values) (*intentPayload, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// Transport failures never include the request, so the key cannot leak
		p.logger.Error("Processor request failed", zap.String("path", path), zap.Error(err))
		return nil, &errors.ErrProcessor{Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrProcessor{Message: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		var ep errorPayload
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if err := json.Unmarshal(raw, &ep); err == nil && ep.Error.Message != "" {
			msg = ep.Error.Message
		}
		p.logger.Error("Processor returned error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &errors.ErrProcessor{Message: msg}
	}

	var payload intentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &errors.ErrProcessor{Message: "failed to unmarshal response: " + err.Error()}
	}
	return &payload, nil
}

func (pl *intentPayload) toIntent() *Intent {
	return &Intent{
		ID:                 pl.ID,
		ClientSecret:       pl.ClientSecret,
		Status:             IntentStatus(pl.Status),
		Amount:             pl.Amount,
		Currency:           pl.Currency,
		Metadata:           pl.Metadata,
		PaymentMethodTypes: pl.PaymentMethodTypes,
	}
}
