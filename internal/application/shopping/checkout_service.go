package shopping

import (
	"context"
	"errors"
	"sync"

	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService drives the checkout flow for each buyer. A checkout
// state machine is kept per user so an open review survives across
// requests; validation failures keep the dialog open.
type CheckoutService struct {
	cartRepo  shopping.CartRepository
	orderRepo ordering.OrderRepository
	ids       *ordering.OrderIDGenerator
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*ordering.Checkout
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartRepo shopping.CartRepository,
	orderRepo ordering.OrderRepository,
	ids *ordering.OrderIDGenerator,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		ids:       ids,
		logger:    logger.Named("checkout"),
		sessions:  make(map[uuid.UUID]*ordering.Checkout),
	}
}

// Begin opens the checkout review for the user's cart. An empty cart is
// rejected with EMPTY_CART and no review is opened.
func (s *CheckoutService) Begin(ctx context.Context, userID uuid.UUID) (*CheckoutReviewResponse, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkout := s.session(userID)
	if err := checkout.Begin(cart); err != nil {
		return nil, err
	}

	methods := make([]PaymentMethodResponse, 0, len(ordering.PaymentMethods()))
	for _, m := range ordering.PaymentMethods() {
		methods = append(methods, PaymentMethodResponse{Value: string(m), Label: m.Label()})
	}

	return &CheckoutReviewResponse{
		Cart:            ToCartResponse(cart),
		DeliveryPresets: ordering.PresetLocations(),
		PaymentMethods:  methods,
	}, nil
}

// Confirm places the reviewed order. Missing delivery location or
// payment method fail with their named errors and keep the review open.
// On success the order is written to the store and the cart cleared; a
// store failure is logged but does not undo the confirmation.
func (s *CheckoutService) Confirm(ctx context.Context, userID uuid.UUID, req ConfirmOrderRequest) (*ordering.Order, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkout := s.session(userID)
	order, err := checkout.Confirm(cart, req.DeliveryLocation, ordering.PaymentMethod(req.PaymentMethod), req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		// The buyer already saw the confirmation; losing the record is
		// an operational problem, not a checkout failure
		s.logger.Error("failed to persist placed order",
			zap.String("order_id", order.OrderID),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	cart.Clear()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("failed to clear cart after order placement",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", userID.String()),
		zap.Int("items", order.ItemCount()),
		zap.String("total", order.Total.String()),
	)

	return order, nil
}

// Abort closes an open checkout review without placing an order
func (s *CheckoutService) Abort(userID uuid.UUID) {
	s.session(userID).Abort()
}

// State returns the user's current checkout state
func (s *CheckoutService) State(userID uuid.UUID) ordering.CheckoutState {
	return s.session(userID).State()
}

func (s *CheckoutService) session(userID uuid.UUID) *ordering.Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkout, ok := s.sessions[userID]
	if !ok {
		checkout = ordering.NewCheckout(s.ids)
		s.sessions[userID] = checkout
	}
	return checkout
}

func (s *CheckoutService) loadCart(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shopping.NewCart(userID), nil
		}
		return nil, err
	}
	return cart, nil
}
