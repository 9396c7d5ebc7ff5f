package shopping

import (
	"context"
	"errors"
	"testing"

	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOrderRepository is an in-memory ordering.OrderRepository
type fakeOrderRepository struct {
	orders   []ordering.Order
	failSave error
}

func (r *fakeOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	if r.failSave != nil {
		return r.failSave
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepository) FindByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (*ordering.Order, error) {
	for i := range r.orders {
		if r.orders[i].UserID == userID && r.orders[i].OrderID == orderID {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	mine := make([]ordering.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (r *fakeOrderRepository) Remove(ctx context.Context, userID uuid.UUID, orderID string) error {
	for i := range r.orders {
		if r.orders[i].UserID == userID && r.orders[i].OrderID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func checkoutFixture(t *testing.T) (*CheckoutService, *fakeCartRepository, *fakeOrderRepository, uuid.UUID) {
	t.Helper()
	cartRepo := newFakeCartRepository()
	orderRepo := &fakeOrderRepository{}
	svc := NewCheckoutService(cartRepo, orderRepo, ordering.NewOrderIDGenerator(), zap.NewNop())

	lookup := newFakeLookup()
	productID := lookup.add("Handmade Ceramic Mug", "25.99")
	carts := NewCartService(cartRepo, lookup, zap.NewNop())
	userID := uuid.New()
	_, err := carts.AddItem(context.Background(), userID, AddItemRequest{ProductID: productID, Quantity: 2})
	require.NoError(t, err)

	return svc, cartRepo, orderRepo, userID
}

func confirmRequest() ConfirmOrderRequest {
	return ConfirmOrderRequest{
		DeliveryLocation: ordering.DeliveryLocation{Label: "Home - Main Address", Address: "123 Main St, Kathmandu"},
		PaymentMethod:    string(ordering.PaymentCOD),
	}
}

func TestCheckoutService_Begin(t *testing.T) {
	t.Run("opens the review with presets and payment methods", func(t *testing.T) {
		svc, _, _, userID := checkoutFixture(t)

		review, err := svc.Begin(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, ordering.CheckoutStateReviewing, svc.State(userID))
		assert.Len(t, review.Cart.Items, 1)
		assert.Len(t, review.DeliveryPresets, 3)
		assert.Len(t, review.PaymentMethods, 6)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		cartRepo := newFakeCartRepository()
		svc := NewCheckoutService(cartRepo, &fakeOrderRepository{}, ordering.NewOrderIDGenerator(), zap.NewNop())
		userID := uuid.New()

		_, err := svc.Begin(context.Background(), userID)

		assert.ErrorIs(t, err, ordering.ErrEmptyCart)
		assert.Equal(t, ordering.CheckoutStateIdle, svc.State(userID))
	})
}

func TestCheckoutService_Confirm(t *testing.T) {
	t.Run("places the order and clears the cart", func(t *testing.T) {
		svc, cartRepo, orderRepo, userID := checkoutFixture(t)
		_, err := svc.Begin(context.Background(), userID)
		require.NoError(t, err)

		order, err := svc.Confirm(context.Background(), userID, confirmRequest())

		require.NoError(t, err)
		assert.Equal(t, "66.14", order.Total.String())
		require.Len(t, orderRepo.orders, 1)

		cart, err := cartRepo.FindByUser(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
		assert.Equal(t, ordering.CheckoutStateIdle, svc.State(userID))
	})

	t.Run("missing delivery location keeps the review open", func(t *testing.T) {
		svc, _, orderRepo, userID := checkoutFixture(t)
		_, err := svc.Begin(context.Background(), userID)
		require.NoError(t, err)

		req := confirmRequest()
		req.DeliveryLocation = ordering.DeliveryLocation{}
		_, err = svc.Confirm(context.Background(), userID, req)

		assert.ErrorIs(t, err, ordering.ErrMissingDeliveryLocation)
		assert.Empty(t, orderRepo.orders)
		assert.Equal(t, ordering.CheckoutStateReviewing, svc.State(userID))
	})

	t.Run("missing payment method keeps the review open", func(t *testing.T) {
		svc, _, _, userID := checkoutFixture(t)
		_, err := svc.Begin(context.Background(), userID)
		require.NoError(t, err)

		req := confirmRequest()
		req.PaymentMethod = ""
		_, err = svc.Confirm(context.Background(), userID, req)

		assert.ErrorIs(t, err, ordering.ErrMissingPaymentMethod)
		assert.Equal(t, ordering.CheckoutStateReviewing, svc.State(userID))
	})

	t.Run("store failure does not undo the confirmation", func(t *testing.T) {
		svc, cartRepo, orderRepo, userID := checkoutFixture(t)
		orderRepo.failSave = errors.New("disk full")
		_, err := svc.Begin(context.Background(), userID)
		require.NoError(t, err)

		order, err := svc.Confirm(context.Background(), userID, confirmRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, order.OrderID)

		cart, err := cartRepo.FindByUser(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})
}

func TestCheckoutService_Abort(t *testing.T) {
	svc, _, _, userID := checkoutFixture(t)
	_, err := svc.Begin(context.Background(), userID)
	require.NoError(t, err)

	svc.Abort(userID)

	assert.Equal(t, ordering.CheckoutStateIdle, svc.State(userID))
}

func TestCheckoutService_SessionsAreIndependent(t *testing.T) {
	svc, _, _, userID := checkoutFixture(t)
	_, err := svc.Begin(context.Background(), userID)
	require.NoError(t, err)

	other := uuid.New()

	assert.Equal(t, ordering.CheckoutStateReviewing, svc.State(userID))
	assert.Equal(t, ordering.CheckoutStateIdle, svc.State(other))
}
