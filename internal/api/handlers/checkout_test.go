package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/cart"
	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/repository"
	"github.com/patramstore/storefront-api/internal/service"
)

type stubOrderItemRepo struct {
	repository.OrderItemRepository
	items []*domain.OrderItem
}

func (s *stubOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return s.items, nil
}

type stubOrderRepo struct {
	repository.OrderRepository
	created   []*domain.Order
	itemRepo  *stubOrderItemRepo
	createErr error
}

func (s *stubOrderRepo) Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	if s.createErr != nil {
		return s.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.created = append(s.created, order)
	for _, item := range items {
		item.OrderID = order.ID
	}
	s.itemRepo.items = append(s.itemRepo.items, items...)
	return nil
}

func checkoutTestConfig() *config.Config {
	return &config.Config{
		WhatsApp: config.WhatsAppConfig{
			BusinessPhone: "+918107514654",
			SupportEmail:  "support@patramstore.com",
			StoreName:     "Patram Store",
		},
	}
}

func checkoutRequestBody(t *testing.T) []byte {
	body, err := json.Marshal(service.CheckoutRequest{
		SessionID:     "session-1",
		CustomerEmail: "asha@example.com",
		ShippingAddress: domain.ShippingAddress{
			Name:    "Asha Sharma",
			Phone:   "9876543210",
			Address: "12 MG Road",
			City:    "Jaipur",
			Pincode: "302001",
			State:   "Rajasthan",
			Country: "India",
		},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	return body
}

func seedCart(t *testing.T, store cart.Store) {
	c := cart.New()
	c.Add(cart.Line{ProductID: "A", Name: "Brass Diya", UnitPrice: 100, Quantity: 2})
	c.Add(cart.Line{ProductID: "B", Name: "Copper Kalash", UnitPrice: 250, Quantity: 1})
	require.NoError(t, store.Save(context.Background(), "session-1", c))
}

func performCheckout(cfg *config.Config, repos *repository.Repositories, store cart.Store, body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/checkout", HandleCheckout(cfg, repos, store, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)

	itemRepo := &stubOrderItemRepo{}
	orderRepo := &stubOrderRepo{itemRepo: itemRepo}
	repos := &repository.Repositories{Order: orderRepo, OrderItem: itemRepo}

	w := performCheckout(checkoutTestConfig(), repos, store, checkoutRequestBody(t))

	require.Equal(t, http.StatusOK, w.Code)

	var result service.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.OrderStatusPending, result.Status)
	assert.Equal(t, 450.0, result.Total)
	assert.NotEmpty(t, result.OrderNumber)
	assert.Contains(t, result.WhatsAppLink, "https://wa.me/919876543210?text=")

	require.Len(t, orderRepo.created, 1)

	loaded, err := store.Load(context.Background(), "session-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCheckoutValidationFailureKeepsCart(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)

	itemRepo := &stubOrderItemRepo{}
	orderRepo := &stubOrderRepo{itemRepo: itemRepo}
	repos := &repository.Repositories{Order: orderRepo, OrderItem: itemRepo}

	var req service.CheckoutRequest
	require.NoError(t, json.Unmarshal(checkoutRequestBody(t), &req))
	req.CustomerEmail = "not-an-email"
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := performCheckout(checkoutTestConfig(), repos, store, body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, orderRepo.created)

	loaded, err := store.Load(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Count())
}

func TestCheckoutStoreFailureKeepsCart(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)

	itemRepo := &stubOrderItemRepo{}
	orderRepo := &stubOrderRepo{itemRepo: itemRepo, createErr: errors.New("connection refused")}
	repos := &repository.Repositories{Order: orderRepo, OrderItem: itemRepo}

	w := performCheckout(checkoutTestConfig(), repos, store, checkoutRequestBody(t))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	loaded, err := store.Load(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Count())
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	store := cart.NewMemoryStore()

	itemRepo := &stubOrderItemRepo{}
	orderRepo := &stubOrderRepo{itemRepo: itemRepo}
	repos := &repository.Repositories{Order: orderRepo, OrderItem: itemRepo}

	w := performCheckout(checkoutTestConfig(), repos, store, checkoutRequestBody(t))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "items")
	assert.Empty(t, orderRepo.created)
}
