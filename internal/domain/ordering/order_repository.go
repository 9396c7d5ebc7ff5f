package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for the order store: an
// append-only collection of placed orders. Each order is written
// atomically as one serialized record.
type OrderRepository interface {
	// Save appends a placed order to the store
	Save(ctx context.Context, order *Order) error

	// FindByOrderID returns the order with the given identifier, or
	// shared.ErrNotFound
	FindByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (*Order, error)

	// ListByUser returns the user's orders, most recent first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// Remove deletes the order with the given identifier; removing an
	// unknown id is a no-op (idempotent cancel)
	Remove(ctx context.Context, userID uuid.UUID, orderID string) error
}
