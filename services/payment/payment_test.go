package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"huduma/database/repository/memory"
	"huduma/models"
	"huduma/services/order"
)

// recordingNotifier captures dispatched pushes for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	pushes []string // user ids
}

func (n *recordingNotifier) SendUserPush(_ context.Context, userID, _, _ string, _ map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, userID)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pushes)
}

func setupPayment(t *testing.T) (*DefaultPaymentService, *memory.Store, *models.Order, *recordingNotifier) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	customer := &models.User{
		ID:          "cust-1",
		DisplayName: "Amina Wanjiru",
		Email:       "amina@example.com",
		Role:        models.RoleCustomer,
	}
	require.NoError(t, store.Users().Create(ctx, customer))

	svc := &models.Service{
		ID:         "svc-1",
		ProviderID: "prov-1",
		Title:      "Deep home cleaning",
		Price:      150000,
		Category:   "cleaning",
	}
	require.NoError(t, store.Catalog().Create(ctx, svc))

	orderSvc := &order.DefaultOrderService{
		Orders:  store.Orders(),
		Catalog: store.Catalog(),
		Users:   store.Users(),
		Logger:  zap.NewNop(),
	}
	o, err := orderSvc.CreateOrder(ctx, order.CreateOrderRequest{
		CustomerID:  customer.ID,
		ServiceID:   svc.ID,
		BookingDate: "2026-09-10",
		BookingTime: "14:30",
	})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	s := &DefaultPaymentService{
		Orders:   store.Orders(),
		Notifier: notifier,
		Logger:   zap.NewNop(),
	}
	return s, store, o, notifier
}

func TestProcessPaymentHappyPath(t *testing.T) {
	s, store, o, notifier := setupPayment(t)
	ctx := context.Background()

	txn, err := s.ProcessPayment(ctx, PaymentRequest{
		OrderID: o.ID,
		UserID:  o.CustomerID,
		Amount:  150000,
		Method:  "GoPay",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionSuccess, txn.Status)
	assert.Equal(t, o.ID, txn.OrderID)
	assert.Equal(t, float64(150000), txn.Amount)

	got, err := store.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, got.Status)
	assert.True(t, got.PaymentReceived)

	txns, err := store.Orders().ListTransactions(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)

	// The confirmation push is post-commit and asynchronous.
	assert.Eventually(t, func() bool { return notifier.count() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestProcessPaymentAmountMismatch(t *testing.T) {
	s, store, o, _ := setupPayment(t)
	ctx := context.Background()

	_, err := s.ProcessPayment(ctx, PaymentRequest{
		OrderID: o.ID,
		UserID:  o.CustomerID,
		Amount:  100000,
		Method:  "GoPay",
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)

	// Neither artifact may exist after a failed settlement.
	got, err := store.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)
	assert.False(t, got.PaymentReceived)

	txns, err := store.Orders().ListTransactions(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestProcessPaymentDouble(t *testing.T) {
	s, store, o, _ := setupPayment(t)
	ctx := context.Background()

	req := PaymentRequest{OrderID: o.ID, UserID: o.CustomerID, Amount: 150000, Method: "GoPay"}

	_, err := s.ProcessPayment(ctx, req)
	require.NoError(t, err)

	_, err = s.ProcessPayment(ctx, req)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	txns, err := store.Orders().ListTransactions(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestProcessPaymentConcurrent(t *testing.T) {
	s, store, o, _ := setupPayment(t)
	ctx := context.Background()

	const attempts = 8
	req := PaymentRequest{OrderID: o.ID, UserID: o.CustomerID, Amount: 150000, Method: "GoPay"}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.ProcessPayment(ctx, req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyPaid)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one settlement may win")

	txns, err := store.Orders().ListTransactions(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	got, err := store.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, got.Status)
}

func TestProcessPaymentValidation(t *testing.T) {
	s, _, o, _ := setupPayment(t)
	ctx := context.Background()

	_, err := s.ProcessPayment(ctx, PaymentRequest{OrderID: o.ID, UserID: o.CustomerID, Amount: -5, Method: "GoPay"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = s.ProcessPayment(ctx, PaymentRequest{OrderID: o.ID, UserID: o.CustomerID, Amount: 150000})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = s.ProcessPayment(ctx, PaymentRequest{OrderID: "missing", UserID: o.CustomerID, Amount: 150000, Method: "GoPay"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
