package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"huduma/database/repository/memory"
	"huduma/models"
)

func setupOrderService(t *testing.T) (*DefaultOrderService, *memory.Store, *models.User, *models.User, *models.Service) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	customer := &models.User{
		ID:          "cust-1",
		DisplayName: "Amina Wanjiru",
		Email:       "amina@example.com",
		PhoneNumber: "+254700111222",
		Address:     "Westlands, Nairobi",
		Role:        models.RoleCustomer,
	}
	require.NoError(t, store.Users().Create(ctx, customer))

	provider := &models.User{
		ID:          "prov-1",
		DisplayName: "Juma Cleaners",
		Email:       "juma@example.com",
		Role:        models.RoleProvider,
	}
	require.NoError(t, store.Users().Create(ctx, provider))

	svc := &models.Service{
		ID:           "svc-1",
		ProviderID:   provider.ID,
		Title:        "Deep home cleaning",
		Price:        150000,
		Category:     "cleaning",
		ThumbnailURL: "https://cdn.example.com/clean.jpg",
	}
	require.NoError(t, store.Catalog().Create(ctx, svc))

	s := &DefaultOrderService{
		Orders:  store.Orders(),
		Catalog: store.Catalog(),
		Users:   store.Users(),
		Logger:  zap.NewNop(),
	}
	return s, store, customer, provider, svc
}

func TestCreateOrderSnapshots(t *testing.T) {
	s, _, customer, provider, svc := setupOrderService(t)
	ctx := context.Background()

	o, err := s.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:  customer.ID,
		ServiceID:   svc.ID,
		BookingDate: "2026-09-10",
		BookingTime: "14:30",
		Notes:       "second floor",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.False(t, o.PaymentReceived)
	assert.Equal(t, customer.ID, o.CustomerID)
	assert.Equal(t, provider.ID, o.ProviderID)
	assert.Equal(t, svc.Price, o.TotalPrice)
	assert.Equal(t, svc.Title, o.Service.Title)
	assert.Equal(t, svc.Price, o.Service.Price)
	assert.Equal(t, svc.Category, o.Service.Category)
	assert.Equal(t, customer.DisplayName, o.Customer.DisplayName)
	assert.Equal(t, customer.PhoneNumber, o.Customer.PhoneNumber)
	assert.Equal(t, customer.Address, o.Customer.Address)
}

func TestSnapshotImmutableAfterListingEdit(t *testing.T) {
	s, store, customer, _, svc := setupOrderService(t)
	ctx := context.Background()

	o, err := s.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:  customer.ID,
		ServiceID:   svc.ID,
		BookingDate: "2026-09-10",
		BookingTime: "09:00",
	})
	require.NoError(t, err)

	// Raise the listing price and rename it after the order was placed.
	svc.Price = 999999
	svc.Title = "Deep home cleaning (premium)"
	require.NoError(t, store.Catalog().UpdateListing(ctx, svc))

	// Edit the customer profile too.
	customer.DisplayName = "A. W."
	customer.Address = "Moved"
	require.NoError(t, store.Users().Update(ctx, customer))

	got, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(150000), got.TotalPrice)
	assert.Equal(t, float64(150000), got.Service.Price)
	assert.Equal(t, "Deep home cleaning", got.Service.Title)
	assert.Equal(t, "Amina Wanjiru", got.Customer.DisplayName)
	assert.Equal(t, "Westlands, Nairobi", got.Customer.Address)
}

func TestCreateOrderUnknownReferences(t *testing.T) {
	s, _, customer, _, svc := setupOrderService(t)
	ctx := context.Background()

	_, err := s.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: customer.ID,
		ServiceID:  "no-such-service",
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = s.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: "no-such-customer",
		ServiceID:  svc.ID,
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = s.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: customer.ID,
		ServiceID:  svc.ID,
		ProviderID: "someone-else",
	})
	assert.ErrorIs(t, err, ErrProviderMismatch)
}

func TestListOrders(t *testing.T) {
	s, _, customer, provider, svc := setupOrderService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		o, err := s.CreateOrder(ctx, CreateOrderRequest{
			CustomerID:  customer.ID,
			ServiceID:   svc.ID,
			BookingDate: "2026-09-10",
			BookingTime: "10:00",
		})
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	// Cancel the middle one.
	_, err := s.UpdateOrderStatus(ctx, ids[1], models.OrderCancelled,
		Actor{UserID: customer.ID, Role: models.RoleCustomer})
	require.NoError(t, err)

	customerOrders, err := s.ListOrders(ctx, customer.ID, models.RoleCustomer, nil)
	require.NoError(t, err)
	require.Len(t, customerOrders, 3)
	// Newest first.
	assert.Equal(t, ids[2], customerOrders[0].ID)
	assert.Equal(t, ids[0], customerOrders[2].ID)

	providerOrders, err := s.ListOrders(ctx, provider.ID, models.RoleProvider, nil)
	require.NoError(t, err)
	assert.Len(t, providerOrders, 3)

	pending, err := s.ListOrders(ctx, customer.ID, models.RoleCustomer,
		[]models.OrderStatus{models.OrderPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	none, err := s.ListOrders(ctx, "stranger", models.RoleCustomer, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateOrderStatusLifecycle(t *testing.T) {
	s, _, customer, provider, svc := setupOrderService(t)
	ctx := context.Background()

	o, err := s.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:  customer.ID,
		ServiceID:   svc.ID,
		BookingDate: "2026-09-10",
		BookingTime: "10:00",
	})
	require.NoError(t, err)

	providerActor := Actor{UserID: provider.ID, Role: models.RoleProvider}

	// pending -> confirmed -> in_progress -> completed, all provider-driven.
	for _, target := range []models.OrderStatus{
		models.OrderConfirmed, models.OrderInProgress, models.OrderCompleted,
	} {
		got, err := s.UpdateOrderStatus(ctx, o.ID, target, providerActor)
		require.NoError(t, err)
		assert.Equal(t, target, got.Status)
	}

	// No way out of a terminal state.
	_, err = s.UpdateOrderStatus(ctx, o.ID, models.OrderPending, providerActor)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.OrderCompleted, invalid.From)

	got, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, got.Status)
}

func TestUpdateOrderStatusAuthorization(t *testing.T) {
	s, _, customer, provider, svc := setupOrderService(t)
	ctx := context.Background()

	o, err := s.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:  customer.ID,
		ServiceID:   svc.ID,
		BookingDate: "2026-09-10",
		BookingTime: "10:00",
	})
	require.NoError(t, err)

	// Customers cannot accept orders.
	_, err = s.UpdateOrderStatus(ctx, o.ID, models.OrderConfirmed,
		Actor{UserID: customer.ID, Role: models.RoleCustomer})
	assert.ErrorIs(t, err, ErrForbidden)

	// A different provider cannot act on someone else's order.
	_, err = s.UpdateOrderStatus(ctx, o.ID, models.OrderConfirmed,
		Actor{UserID: "other-provider", Role: models.RoleProvider})
	assert.ErrorIs(t, err, ErrForbidden)

	// The status must be untouched after the rejected attempts.
	got, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)

	// The order's own provider may accept.
	_, err = s.UpdateOrderStatus(ctx, o.ID, models.OrderConfirmed,
		Actor{UserID: provider.ID, Role: models.RoleProvider})
	assert.NoError(t, err)
}

func TestGetOrderNotFound(t *testing.T) {
	s, _, _, _, _ := setupOrderService(t)
	_, err := s.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
