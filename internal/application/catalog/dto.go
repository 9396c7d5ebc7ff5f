package catalog

import (
	"time"

	"github.com/towntreasure/backend/internal/domain/catalog"
	"github.com/towntreasure/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to list a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       *int            `json:"stock" binding:"required,min=0"`
	Image       string          `json:"image" binding:"max=2000"`
	Category    string          `json:"category" binding:"max=100"`
	Location    string          `json:"location" binding:"max=200"`
}

// UpdateProductRequest represents a request to update a product listing
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Image       *string          `json:"image" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Location    *string          `json:"location" binding:"omitempty,max=200"`
}

// ProductResponse represents a product in API responses. Prices are
// quoted in USD with a display conversion to NPR at the current rate.
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	PriceNPR    decimal.Decimal `json:"price_npr"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Rating      decimal.Decimal `json:"rating"`
	SellerID    uuid.UUID       `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse represents the product listing with its source
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Source   string            `json:"source"` // database or builtin
}

// PromotionResponse represents a storefront offer in API responses
type PromotionResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ValidUntil  time.Time `json:"valid_until"`
}

// ToProductResponse converts a domain Product to ProductResponse using
// the given USD to NPR rate for the display price
func ToProductResponse(p *catalog.Product, usdToNPR decimal.Decimal) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		PriceNPR:    valueobject.NewMoneyUSD(p.Price).Convert(valueobject.NPR, usdToNPR).RoundCents().Amount(),
		Stock:       p.Stock,
		Status:      string(p.Status()),
		Image:       p.Image,
		Category:    p.Category,
		Location:    p.Location,
		Rating:      p.Rating,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPromotionResponse converts a domain Promotion to PromotionResponse
func ToPromotionResponse(p catalog.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ValidUntil:  p.ValidUntil,
	}
}
