package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns all products, newest first
	FindAll(ctx context.Context) ([]Product, error)

	// FindBySeller returns all products listed by a seller, newest first
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error)

	// FindByCategory returns all products in a category, newest first
	FindByCategory(ctx context.Context, category string) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product; no error if it does not exist
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}
