package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/pkg/errors"
)

func TestMockProcessor_CreateIntent(t *testing.T) {
	p := NewMockProcessor(zap.NewNop())

	intent, err := p.CreateIntent(context.Background(), CreateIntentParams{
		Amount:   4999,
		Currency: "EUR",
		Metadata: map[string]string{"userId": "u-1"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(intent.ID, "pi_mock_"))
	assert.True(t, strings.HasPrefix(intent.ClientSecret, intent.ID))
	assert.Equal(t, int64(4999), intent.Amount)
	assert.Equal(t, "eur", intent.Currency)
	assert.Equal(t, map[string]string{"userId": "u-1"}, intent.Metadata)
	assert.Equal(t, IntentStatusSucceeded, intent.Status)
	assert.NotEmpty(t, intent.PaymentMethodTypes)
}

func TestMockProcessor_RetrieveAlwaysSucceeds(t *testing.T) {
	p := NewMockProcessor(zap.NewNop())

	created, err := p.CreateIntent(context.Background(), CreateIntentParams{Amount: 100, Currency: "eur"})
	require.NoError(t, err)

	retrieved, err := p.RetrieveIntent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentStatusSucceeded, retrieved.Status)
	assert.Equal(t, created.Amount, retrieved.Amount)
}

func TestMockProcessor_RetrieveUnknownMockID(t *testing.T) {
	p := NewMockProcessor(zap.NewNop())

	// A mock-prefixed id from a previous process still confirms
	intent, err := p.RetrieveIntent(context.Background(), "pi_mock_stale")
	require.NoError(t, err)
	assert.Equal(t, IntentStatusSucceeded, intent.Status)
}

func TestMockProcessor_RetrieveForeignID(t *testing.T) {
	p := NewMockProcessor(zap.NewNop())

	_, err := p.RetrieveIntent(context.Background(), "pi_live_123")
	var notFound *errors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestMockProcessor_IsMock(t *testing.T) {
	assert.True(t, NewMockProcessor(zap.NewNop()).IsMock())
}
