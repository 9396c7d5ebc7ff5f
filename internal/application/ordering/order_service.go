package ordering

import (
	"context"

	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order history operations. Orders are append-only
// records; the only mutation offered is cancellation, which removes the
// record from the store outright.
type OrderService struct {
	orderRepo ordering.OrderRepository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger.Named("orders"),
	}
}

// List returns the user's orders, most recent first
func (s *OrderService) List(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, nil
}

// Get returns a single order by its identifier
func (s *OrderService) Get(ctx context.Context, userID uuid.UUID, orderID string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Cancel removes the order from the store. Cancelling an unknown or
// already-cancelled order succeeds, so retries are harmless.
func (s *OrderService) Cancel(ctx context.Context, userID uuid.UUID, orderID string) error {
	if err := s.orderRepo.Remove(ctx, userID, orderID); err != nil {
		return err
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", orderID),
		zap.String("user_id", userID.String()),
	)
	return nil
}
