package payment

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/pkg/errors"
)

// mockIntentPrefix marks synthetic intents so they can never be mistaken
// for live ones in logs or order records.
const mockIntentPrefix = "pi_mock_"

// MockProcessor is the in-process stand-in used when no genuine processor
// credentials are configured. It keeps the full intent call shapes so
// callers and tests exercise the real state machine; confirming a mock
// intent always reports success.
type MockProcessor struct {
	mu      sync.RWMutex
	intents map[string]*Intent
	logger  *zap.Logger
}

// NewMockProcessor creates a deterministic fake processor
func NewMockProcessor(logger *zap.Logger) *MockProcessor {
	return &MockProcessor{
		intents: make(map[string]*Intent),
		logger:  logger,
	}
}

func (p *MockProcessor) IsMock() bool { return true }

// CreateIntent mints a synthetic intent echoing back the requested amount,
// currency and metadata.
func (p *MockProcessor) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	intent := &Intent{
		ID:                 mockIntentPrefix + token,
		ClientSecret:       mockIntentPrefix + token + "_secret_" + uuid.New().String()[:8],
		Status:             IntentStatusSucceeded,
		Amount:             params.Amount,
		Currency:           strings.ToLower(params.Currency),
		Metadata:           params.Metadata,
		PaymentMethodTypes: []string{"card"},
	}

	p.mu.Lock()
	p.intents[intent.ID] = intent
	p.mu.Unlock()

	p.logger.Info("Created mock payment intent",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", intent.Amount),
		zap.String("currency", intent.Currency),
	)
	return intentCopy(intent), nil
}

// RetrieveIntent returns the stored intent. Unknown mock-prefixed ids still
// succeed so confirmation works across process restarts.
func (p *MockProcessor) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	if id == "" {
		return nil, &errors.ErrValidation{Field: "paymentIntentId", Message: "must not be empty"}
	}

	p.mu.RLock()
	intent, ok := p.intents[id]
	p.mu.RUnlock()

	if ok {
		return intentCopy(intent), nil
	}
	if strings.HasPrefix(id, mockIntentPrefix) {
		return &Intent{
			ID:                 id,
			Status:             IntentStatusSucceeded,
			PaymentMethodTypes: []string{"card"},
		}, nil
	}
	return nil, &errors.ErrNotFound{Resource: "payment intent", ID: id}
}

func intentCopy(in *Intent) *Intent {
	out := *in
	if in.Metadata != nil {
		out.Metadata = make(map[string]string, len(in.Metadata))
		for k, v := range in.Metadata {
			out.Metadata[k] = v
		}
	}
	out.PaymentMethodTypes = append([]string(nil), in.PaymentMethodTypes...)
	return &out
}
