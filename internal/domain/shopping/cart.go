package shopping

import (
	"strings"

	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem represents one line in a buyer's cart
type CartItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	Seller    string          `json:"seller"`
}

// LineTotal returns unit price multiplied by quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the live collection of items one buyer intends to purchase.
// It is owned exclusively by that buyer's session; totals are always
// derived from the current item list, never stored.
type Cart struct {
	UserID uuid.UUID
	Items  []CartItem
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		UserID: userID,
		Items:  make([]CartItem, 0),
	}
}

// AddItem appends a line for the product, or merges the quantity into an
// existing line for the same product.
func (c *Cart) AddItem(item CartItem) error {
	if item.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(item.Name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if item.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if item.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}

	c.Items = append(c.Items, item)
	return nil
}

// SetQuantity replaces the quantity of the line for the given product.
// Quantities below 1 are rejected as a silent no-op, as is an unknown
// product id.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line for the given product; no-op if absent
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
}

// IsEmpty reports whether the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the total unit count across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Snapshot returns a deep copy of the current items. Mutating the cart
// afterwards does not affect the snapshot, which makes it safe to embed
// in an order record.
func (c *Cart) Snapshot() []CartItem {
	snapshot := make([]CartItem, len(c.Items))
	copy(snapshot, c.Items)
	return snapshot
}

// Totals computes the derived totals for the current item list
func (c *Cart) Totals() Totals {
	return ComputeTotals(c.Items)
}
