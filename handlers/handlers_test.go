package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"huduma/database/repository/memory"
	"huduma/models"
	"huduma/services/catalog"
	"huduma/services/order"
	"huduma/services/payment"
	"huduma/services/review"
	"huduma/services/user"
)

// testAuth stands in for the JWT middleware: identity comes from headers.
func testAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-Test-User"))
		c.Set("role", c.GetHeader("X-Test-Role"))
		c.Next()
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Users().Create(ctx, &models.User{
		ID:          "cust-1",
		DisplayName: "Amina Wanjiru",
		Email:       "amina@example.com",
		PhoneNumber: "+254700000001",
		Address:     "Kilimani, Nairobi",
		Role:        models.RoleCustomer,
	}))
	require.NoError(t, store.Users().Create(ctx, &models.User{
		ID:          "prov-1",
		DisplayName: "Safi Cleaners",
		Email:       "safi@example.com",
		Role:        models.RoleProvider,
	}))
	require.NoError(t, store.Catalog().Create(ctx, &models.Service{
		ID:         "svc-1",
		ProviderID: "prov-1",
		Title:      "Deep home cleaning",
		Price:      150000,
		Category:   "cleaning",
	}))

	logger := zap.NewNop()
	orderSvc := &order.DefaultOrderService{
		Orders:  store.Orders(),
		Catalog: store.Catalog(),
		Users:   store.Users(),
		Logger:  logger,
	}
	paymentSvc := &payment.DefaultPaymentService{Orders: store.Orders(), Logger: logger}
	reviewSvc := &review.DefaultReviewService{
		Reviews: store.Reviews(),
		Catalog: store.Catalog(),
		Logger:  logger,
	}
	userSvc := &user.DefaultUserService{Repo: store.Users()}
	catalogSvc := &catalog.DefaultCatalogService{Repo: store.Catalog(), Logger: logger}

	orderH := NewOrderHandler(orderSvc, logger)
	paymentH := NewPaymentHandler(paymentSvc, logger)
	reviewH := NewReviewHandler(reviewSvc, userSvc, logger)
	catalogH := NewCatalogHandler(catalogSvc, logger)

	r := gin.New()
	api := r.Group("/api", testAuth())
	api.POST("/orders", orderH.CreateOrderHandler)
	api.GET("/orders", orderH.ListOrdersHandler)
	api.GET("/orders/:id", orderH.GetOrderHandler)
	api.PATCH("/orders/:id/status", orderH.UpdateOrderStatusHandler)
	api.POST("/orders/:id/pay", paymentH.PayOrderHandler)
	api.POST("/reviews", reviewH.AddReviewHandler)
	api.GET("/services/:id", catalogH.GetServiceHandler)
	api.GET("/services/:id/reviews", reviewH.ListServiceReviewsHandler)

	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID, role string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", userID)
	req.Header.Set("X-Test-Role", role)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func placeOrder(t *testing.T, r *gin.Engine) models.Order {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/orders", "cust-1", "customer", gin.H{
		"service_id":   "svc-1",
		"booking_date": "2026-09-10",
		"booking_time": "14:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var o models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	return o
}

func TestCreateOrderEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	o := placeOrder(t, r)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, "cust-1", o.CustomerID)
	assert.Equal(t, "prov-1", o.ProviderID)
	assert.Equal(t, "Deep home cleaning", o.Service.Title)
	assert.Equal(t, float64(150000), o.TotalPrice)

	// Unknown service resolves to 404.
	w := doJSON(t, r, http.MethodPost, "/api/orders", "cust-1", "customer", gin.H{
		"service_id":   "missing",
		"booking_date": "2026-09-10",
		"booking_time": "14:30",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Missing required fields are rejected before the service layer.
	w = doJSON(t, r, http.MethodPost, "/api/orders", "cust-1", "customer", gin.H{
		"service_id": "svc-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderEndpointPartyCheck(t *testing.T) {
	r, _ := setupRouter(t)
	o := placeOrder(t, r)

	for _, id := range []string{"cust-1", "prov-1"} {
		w := doJSON(t, r, http.MethodGet, "/api/orders/"+o.ID, id, "customer", nil)
		assert.Equal(t, http.StatusOK, w.Code, "party %s", id)
	}

	w := doJSON(t, r, http.MethodGet, "/api/orders/"+o.ID, "stranger", "customer", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders/missing", "cust-1", "customer", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayOrderEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	o := placeOrder(t, r)
	path := fmt.Sprintf("/api/orders/%s/pay", o.ID)

	// Wrong amount is rejected and leaves the order pending.
	w := doJSON(t, r, http.MethodPost, path, "cust-1", "customer", gin.H{
		"amount": 100000, "method": "GoPay",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPost, path, "cust-1", "customer", gin.H{
		"amount": 150000, "method": "GoPay",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Transaction models.Transaction `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.TransactionSuccess, resp.Transaction.Status)

	// Second settlement conflicts.
	w = doJSON(t, r, http.MethodPost, path, "cust-1", "customer", gin.H{
		"amount": 150000, "method": "GoPay",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderStatusEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	o := placeOrder(t, r)
	payPath := fmt.Sprintf("/api/orders/%s/pay", o.ID)
	statusPath := fmt.Sprintf("/api/orders/%s/status", o.ID)

	// Provider cannot start work on an unpaid order.
	w := doJSON(t, r, http.MethodPatch, statusPath, "prov-1", "provider", gin.H{"status": "in_progress"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, payPath, "cust-1", "customer", gin.H{"amount": 150000, "method": "GoPay"})
	require.Equal(t, http.StatusOK, w.Code)

	// Customer holds no right to start work.
	w = doJSON(t, r, http.MethodPatch, statusPath, "cust-1", "customer", gin.H{"status": "in_progress"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPatch, statusPath, "prov-1", "provider", gin.H{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPatch, statusPath, "prov-1", "provider", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.OrderCompleted, got.Status)

	// Completed is terminal.
	w = doJSON(t, r, http.MethodPatch, statusPath, "cust-1", "customer", gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListOrdersEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	placeOrder(t, r)
	placeOrder(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/orders?status=pending", "cust-1", "customer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 2)

	w = doJSON(t, r, http.MethodGet, "/api/orders?status=completed", "cust-1", "customer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Orders)
}

func TestReviewEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	o := placeOrder(t, r)

	body := gin.H{
		"order_id":    o.ID,
		"service_id":  "svc-1",
		"provider_id": "prov-1",
		"rating":      5,
		"comment":     "spotless",
	}
	w := doJSON(t, r, http.MethodPost, "/api/reviews", "cust-1", "customer", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rev models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rev))
	assert.Equal(t, "Amina Wanjiru", rev.CustomerName)

	// One review per order.
	w = doJSON(t, r, http.MethodPost, "/api/reviews", "cust-1", "customer", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/services/svc-1/reviews", "cust-1", "customer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reviews []models.Review `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reviews, 1)

	// The aggregate is visible on the listing.
	w = doJSON(t, r, http.MethodGet, "/api/services/svc-1", "cust-1", "customer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var svc models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svc))
	assert.Equal(t, 5.0, svc.Rating)
	assert.Equal(t, 1, svc.ReviewCount)
}
