package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/cart"
	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/internal/payment"
	"github.com/printhaus/storefront/internal/repository"
	"github.com/printhaus/storefront/pkg/errors"
)

// fakeOrderRepository records created orders in memory
type fakeOrderRepository struct {
	orders map[string]*domain.Order
	items  map[uuid.UUID][]*domain.OrderItem
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		orders: make(map[string]*domain.Order),
		items:  make(map[uuid.UUID][]*domain.OrderItem),
	}
}

func (f *fakeOrderRepository) Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.PaymentIntentID] = order
	f.items[order.ID] = items
	return nil
}

func (f *fakeOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (f *fakeOrderRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Order, error) {
	if o, ok := f.orders[intentID]; ok {
		return o, nil
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: intentID}
}

func (f *fakeOrderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepository) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{}, nil
}

// stubProcessor returns a scripted intent status on retrieve
type stubProcessor struct {
	created  []payment.CreateIntentParams
	retrieve payment.IntentStatus
}

func (s *stubProcessor) CreateIntent(ctx context.Context, params payment.CreateIntentParams) (*payment.Intent, error) {
	s.created = append(s.created, params)
	return &payment.Intent{
		ID:           "pi_stub_1",
		ClientSecret: "pi_stub_1_secret",
		Status:       payment.IntentStatusRequiresPaymentMethod,
		Amount:       params.Amount,
		Currency:     params.Currency,
		Metadata:     params.Metadata,
	}, nil
}

func (s *stubProcessor) RetrieveIntent(ctx context.Context, id string) (*payment.Intent, error) {
	return &payment.Intent{ID: id, Status: s.retrieve, Amount: 4999, Currency: "eur"}, nil
}

func (s *stubProcessor) IsMock() bool { return false }

func testRepos(orders repository.OrderRepository) *repository.Repositories {
	return &repository.Repositories{Order: orders}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{amount: 49.99, want: 4999},
		{amount: 0.01, want: 1},
		{amount: 10, want: 1000},
		{amount: 19.999, want: 2000},
		// Classic float tail: 29.1*100 = 2909.9999... must still round up
		{amount: 29.1, want: 2910},
		{amount: 0.1 + 0.2, want: 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMinorUnits(tt.amount), "amount %v", tt.amount)
	}
}

func TestCheckoutService_CreateIntent(t *testing.T) {
	processor := &stubProcessor{}
	svc := NewCheckoutService(processor, testRepos(newFakeOrderRepository()), zap.NewNop())

	resp, err := svc.CreateIntent(context.Background(), CreateIntentRequest{
		Amount:   49.99,
		Currency: "eur",
		Metadata: map[string]string{"userId": "u-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_stub_1", resp.PaymentIntentID)
	assert.Equal(t, "pi_stub_1_secret", resp.ClientSecret)
	assert.False(t, resp.IsMock)

	require.Len(t, processor.created, 1)
	assert.Equal(t, int64(4999), processor.created[0].Amount)
	assert.Equal(t, "eur", processor.created[0].Currency)
}

func TestCheckoutService_CreateIntent_DefaultsCurrency(t *testing.T) {
	processor := &stubProcessor{}
	svc := NewCheckoutService(processor, testRepos(newFakeOrderRepository()), zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, "eur", processor.created[0].Currency)
}

func TestCheckoutService_CreateIntent_InvalidAmount(t *testing.T) {
	for _, amount := range []float64{0, -1, -49.99} {
		processor := &stubProcessor{}
		svc := NewCheckoutService(processor, testRepos(newFakeOrderRepository()), zap.NewNop())

		_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: amount})

		var valErr *errors.ErrValidation
		require.ErrorAs(t, err, &valErr, "amount %v", amount)
		// No intent was created at the processor
		assert.Empty(t, processor.created)
	}
}

func TestCheckoutService_CreateIntent_UnknownCurrency(t *testing.T) {
	processor := &stubProcessor{}
	svc := NewCheckoutService(processor, testRepos(newFakeOrderRepository()), zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: 10, Currency: "zzz"})

	var valErr *errors.ErrValidation
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, processor.created)
}

func TestCheckoutService_CreateIntent_WithMockProcessor(t *testing.T) {
	processor := payment.NewMockProcessor(zap.NewNop())
	svc := NewCheckoutService(processor, testRepos(newFakeOrderRepository()), zap.NewNop())

	resp, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: 49.99})
	require.NoError(t, err)
	assert.True(t, resp.IsMock)

	// Confirming a mock intent always settles
	confirm, err := svc.Confirm(context.Background(), ConfirmParams{PaymentIntentID: resp.PaymentIntentID})
	require.NoError(t, err)
	assert.True(t, confirm.Success)
	assert.Equal(t, resp.PaymentIntentID, confirm.PaymentIntentID)
}

func TestCheckoutService_Confirm_Settles(t *testing.T) {
	orders := newFakeOrderRepository()
	processor := &stubProcessor{retrieve: payment.IntentStatusSucceeded}
	svc := NewCheckoutService(processor, testRepos(orders), zap.NewNop())

	userID := uuid.New()
	snapshot := cart.State{
		Items: []cart.Item{
			{ID: "a", ProductID: "p1", Name: "Print", Price: 29.1, Quantity: 1, Size: "50x70", Frame: "oak"},
			{ID: "b", ProductID: "p2", Name: "Poster", Price: 10.44, Quantity: 2},
		},
		Total:     49.98,
		ItemCount: 3,
	}

	resp, err := svc.Confirm(context.Background(), ConfirmParams{
		PaymentIntentID: "pi_stub_1",
		Snapshot:        snapshot,
		UserID:          &userID,
		CustomerEmail:   "ada@example.com",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	order, err := orders.GetByPaymentIntentID(context.Background(), "pi_stub_1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, int64(4999), order.AmountMinor)
	assert.Equal(t, "ada@example.com", order.CustomerEmail)
	require.NotNil(t, order.UserID)
	assert.Equal(t, userID, *order.UserID)

	items, err := orders.GetItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "oak", items[0].Frame)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestCheckoutService_Confirm_NotCompletedIsRetryable(t *testing.T) {
	for _, status := range []payment.IntentStatus{
		payment.IntentStatusRequiresPaymentMethod,
		payment.IntentStatusRequiresConfirmation,
		payment.IntentStatusFailed,
	} {
		orders := newFakeOrderRepository()
		processor := &stubProcessor{retrieve: status}
		svc := NewCheckoutService(processor, testRepos(orders), zap.NewNop())

		_, err := svc.Confirm(context.Background(), ConfirmParams{PaymentIntentID: "pi_stub_1"})

		var notCompleted *errors.ErrPaymentNotCompleted
		require.ErrorAs(t, err, &notCompleted, "status %s", status)
		assert.Equal(t, string(status), notCompleted.Status)

		// No order was written
		_, err = orders.GetByPaymentIntentID(context.Background(), "pi_stub_1")
		var notFound *errors.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	}
}

func TestCheckoutService_Confirm_Idempotent(t *testing.T) {
	orders := newFakeOrderRepository()
	processor := &stubProcessor{retrieve: payment.IntentStatusSucceeded}
	svc := NewCheckoutService(processor, testRepos(orders), zap.NewNop())

	params := ConfirmParams{PaymentIntentID: "pi_stub_1"}
	_, err := svc.Confirm(context.Background(), params)
	require.NoError(t, err)
	first := orders.orders["pi_stub_1"].ID

	_, err = svc.Confirm(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, orders.orders["pi_stub_1"].ID, "second confirm must not replace the order")
}

func TestCheckoutService_Confirm_EmptyIntentID(t *testing.T) {
	svc := NewCheckoutService(&stubProcessor{}, testRepos(newFakeOrderRepository()), zap.NewNop())

	_, err := svc.Confirm(context.Background(), ConfirmParams{})
	var valErr *errors.ErrValidation
	assert.ErrorAs(t, err, &valErr)
}
