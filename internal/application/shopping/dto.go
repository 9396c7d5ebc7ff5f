package shopping

import (
	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// SetQuantityRequest represents a request to change a line's quantity.
// Values below 1 are accepted and ignored downstream.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Image     string          `json:"image"`
	Seller    string          `json:"seller"`
}

// CartResponse represents the cart with its derived totals
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Shipping  decimal.Decimal    `json:"shipping"`
	Tax       decimal.Decimal    `json:"tax"`
	Total     decimal.Decimal    `json:"total"`
}

// ConfirmOrderRequest represents a request to place the reviewed order
type ConfirmOrderRequest struct {
	DeliveryLocation ordering.DeliveryLocation `json:"delivery_location" binding:"required"`
	PaymentMethod    string                    `json:"payment_method" binding:"required"`
	Notes            string                    `json:"notes" binding:"max=1000"`
}

// CheckoutReviewResponse represents the order summary shown while the
// buyer reviews the checkout
type CheckoutReviewResponse struct {
	Cart            CartResponse                `json:"cart"`
	DeliveryPresets []ordering.DeliveryLocation `json:"delivery_presets"`
	PaymentMethods  []PaymentMethodResponse     `json:"payment_methods"`
}

// PaymentMethodResponse represents a selectable payment method
type PaymentMethodResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(cart *shopping.Cart) CartResponse {
	totals := cart.Totals()

	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
			Image:     item.Image,
			Seller:    item.Seller,
		})
	}

	return CartResponse{
		Items:     items,
		ItemCount: cart.ItemCount(),
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Tax:       totals.Tax,
		Total:     totals.Total,
	}
}
