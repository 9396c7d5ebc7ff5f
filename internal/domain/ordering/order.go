package ordering

import (
	"time"

	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a placed order
type OrderStatus string

const (
	// OrderStatusPlaced is assigned on creation. Orders are never updated
	// in place; cancellation removes the record from the store outright.
	OrderStatusPlaced OrderStatus = "placed"
)

// Order is an immutable snapshot of a confirmed purchase. The item list
// is a deep copy taken at confirmation time, so later cart mutations do
// not retroactively alter the stored record. All amounts are derived
// from the items via the cart totals formulas, never set independently.
type Order struct {
	OrderID          string
	UserID           uuid.UUID
	Items            []shopping.CartItem
	Subtotal         decimal.Decimal
	Shipping         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	DeliveryLocation DeliveryLocation
	PaymentMethod    PaymentMethod
	Notes            string
	OrderDate        time.Time
	Status           OrderStatus
}

// ItemCount returns the total unit count across the order's lines
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
