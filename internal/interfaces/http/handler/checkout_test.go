package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	applicationordering "github.com/towntreasure/backend/internal/application/ordering"
	applicationshopping "github.com/towntreasure/backend/internal/application/shopping"
	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/towntreasure/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryOrderStore is an in-memory ordering.OrderRepository
type memoryOrderStore struct {
	orders []ordering.Order
}

func (r *memoryOrderStore) Save(ctx context.Context, order *ordering.Order) error {
	r.orders = append(r.orders, *order)
	return nil
}

func (r *memoryOrderStore) FindByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (*ordering.Order, error) {
	for i := range r.orders {
		if r.orders[i].UserID == userID && r.orders[i].OrderID == orderID {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryOrderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	mine := make([]ordering.Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			mine = append(mine, r.orders[i])
		}
	}
	return mine, nil
}

func (r *memoryOrderStore) Remove(ctx context.Context, userID uuid.UUID, orderID string) error {
	for i := range r.orders {
		if r.orders[i].UserID == userID && r.orders[i].OrderID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

type checkoutTestEnv struct {
	cartTestEnv
	orders *memoryOrderStore
}

func newCheckoutTestEnv(t *testing.T) checkoutTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	productID := uuid.New()
	repo := &memoryCartRepository{carts: make(map[uuid.UUID]*shopping.Cart)}
	lookup := staticLookup{item: shopping.CartItem{
		ProductID: productID,
		Name:      "Handmade Ceramic Mug",
		UnitPrice: decimal.RequireFromString("25.99"),
		Quantity:  1,
	}}
	cartSvc := applicationshopping.NewCartService(repo, lookup, zap.NewNop())

	orders := &memoryOrderStore{}
	checkoutSvc := applicationshopping.NewCheckoutService(repo, orders, ordering.NewOrderIDGenerator(), zap.NewNop())
	orderSvc := applicationordering.NewOrderService(orders, zap.NewNop())

	userID := uuid.New()
	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(identityStub(userID))
	NewCartHandler(cartSvc).RegisterRoutes(group)
	NewCheckoutHandler(checkoutSvc).RegisterRoutes(group)
	NewOrderHandler(orderSvc).RegisterRoutes(group)

	return checkoutTestEnv{
		cartTestEnv: cartTestEnv{engine: engine, userID: userID, productID: productID},
		orders:      orders,
	}
}

func confirmBody() gin.H {
	return gin.H{
		"delivery_location": gin.H{"label": "Home - Main Address", "address": "123 Main St, Kathmandu"},
		"payment_method":    "cod",
	}
}

func TestCheckoutHandler_Begin(t *testing.T) {
	t.Run("empty cart maps to 422", func(t *testing.T) {
		env := newCheckoutTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/checkout/begin", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "EMPTY_CART")
	})

	t.Run("filled cart opens the review", func(t *testing.T) {
		env := newCheckoutTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": env.productID, "quantity": 2})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodPost, "/api/v1/checkout/begin", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "delivery_presets")
		assert.Contains(t, rec.Body.String(), "payment_methods")
	})
}

func TestCheckoutHandler_Confirm(t *testing.T) {
	t.Run("places the order and empties the cart", func(t *testing.T) {
		env := newCheckoutTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": env.productID, "quantity": 2})
		require.Equal(t, http.StatusOK, rec.Code)
		rec = env.do(t, http.MethodPost, "/api/v1/checkout/begin", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodPost, "/api/v1/checkout/confirm", confirmBody())

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, env.orders.orders, 1)
		assert.Equal(t, "66.14", env.orders.orders[0].Total.String())

		rec = env.do(t, http.MethodGet, "/api/v1/cart", nil)
		var body struct {
			Data applicationshopping.CartResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Empty(t, body.Data.Items)
	})

	t.Run("missing payment method maps to 422 and keeps reviewing", func(t *testing.T) {
		env := newCheckoutTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": env.productID})
		require.Equal(t, http.StatusOK, rec.Code)
		rec = env.do(t, http.MethodPost, "/api/v1/checkout/begin", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := confirmBody()
		body["payment_method"] = "bitcoin"
		rec = env.do(t, http.MethodPost, "/api/v1/checkout/confirm", body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_PAYMENT_METHOD")

		rec = env.do(t, http.MethodGet, "/api/v1/checkout/state", nil)
		assert.Contains(t, rec.Body.String(), "reviewing")
	})
}

func TestCheckoutHandler_Abort(t *testing.T) {
	env := newCheckoutTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": env.productID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/checkout/begin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/checkout/abort", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/checkout/state", nil)
	assert.Contains(t, rec.Body.String(), "idle")
}

func TestOrderHandler_CancelIsIdempotent(t *testing.T) {
	env := newCheckoutTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": env.productID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/checkout/begin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/checkout/confirm", confirmBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, env.orders.orders, 1)
	orderID := env.orders.orders[0].OrderID

	rec = env.do(t, http.MethodDelete, "/api/v1/orders/"+orderID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.orders.orders)

	rec = env.do(t, http.MethodDelete, "/api/v1/orders/"+orderID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
