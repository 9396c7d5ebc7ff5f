package catalog

import (
	"strings"

	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the availability status of a product
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusLowStock   ProductStatus = "low_stock"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// LowStockThreshold is the stock level at or below which a product is
// flagged as low stock on the seller dashboard.
const LowStockThreshold = 5

// Product represents a marketplace listing offered by a seller.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Unit price in USD
	Stock       int             `gorm:"not null;default:0"`
	Image       string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100);index"`
	Location    string          `gorm:"type:varchar(200)"` // Town/area the seller operates from
	Rating      decimal.Decimal `gorm:"type:decimal(3,1);not null;default:0"`
	SellerID    uuid.UUID       `gorm:"type:uuid;index"`
	SellerName  string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product listing
func NewProduct(name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Price:      price,
		Stock:      stock,
	}, nil
}

// Update replaces the product's listing details
func (p *Product) Update(name, description, image, category string) error {
	if err := validateName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Image = image
	p.Category = category
	p.Touch()

	return nil
}

// SetPrice updates the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// SetStock replaces the stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.Touch()
	return nil
}

// SetSeller assigns the owning seller
func (p *Product) SetSeller(sellerID uuid.UUID, sellerName string) {
	p.SellerID = sellerID
	p.SellerName = sellerName
	p.Touch()
}

// Status derives the availability status from the current stock level
func (p *Product) Status() ProductStatus {
	switch {
	case p.Stock <= 0:
		return ProductStatusOutOfStock
	case p.Stock <= LowStockThreshold:
		return ProductStatusLowStock
	default:
		return ProductStatusActive
	}
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
