package shopping

import (
	"context"
	"errors"

	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductLookup resolves a product id to the listing details captured on
// a cart line
type ProductLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (shopping.CartItem, error)
}

// CartService handles cart mutations. Every mutation persists the full
// cart, so the stored record always matches the in-memory state.
type CartService struct {
	cartRepo shopping.CartRepository
	products ProductLookup
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo shopping.CartRepository, products ProductLookup, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		products: products,
		logger:   logger.Named("cart"),
	}
}

// Get returns the user's cart with derived totals, creating an empty
// cart for first-time users
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// AddItem adds a product to the user's cart, merging with an existing
// line for the same product
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	item, err := s.products.Lookup(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	item.Quantity = quantity

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddItem(item); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// SetQuantity replaces a line's quantity. Quantities below 1 and
// unknown product ids leave the cart untouched.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(productID, quantity)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// RemoveItem deletes a line from the cart; removing an absent product
// succeeds
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	resp := ToCartResponse(cart)
	return &resp, nil
}

func (s *CartService) loadCart(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shopping.NewCart(userID), nil
		}
		return nil, err
	}
	return cart, nil
}
