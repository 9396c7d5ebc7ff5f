package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence.
// A cart is written as a single unit: the stored record always reflects
// the full item list at the time of the last mutation.
type CartRepository interface {
	// FindByUser returns the cart owned by the user, or shared.ErrNotFound
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save creates or replaces the user's cart
	Save(ctx context.Context, cart *Cart) error
}
