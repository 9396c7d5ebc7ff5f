package ordering

import (
	"time"

	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderItemResponse represents one line of a placed order
type OrderItemResponse struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Image     string          `json:"image"`
	Seller    string          `json:"seller"`
}

// OrderResponse represents a placed order in API responses
type OrderResponse struct {
	OrderID          string                    `json:"order_id"`
	Items            []OrderItemResponse       `json:"items"`
	ItemCount        int                       `json:"item_count"`
	Subtotal         decimal.Decimal           `json:"subtotal"`
	Shipping         decimal.Decimal           `json:"shipping"`
	Tax              decimal.Decimal           `json:"tax"`
	Total            decimal.Decimal           `json:"total"`
	DeliveryLocation ordering.DeliveryLocation `json:"delivery_location"`
	PaymentMethod    string                    `json:"payment_method"`
	PaymentLabel     string                    `json:"payment_label"`
	Notes            string                    `json:"notes,omitempty"`
	OrderDate        time.Time                 `json:"order_date"`
	Status           string                    `json:"status"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
			Image:     item.Image,
			Seller:    item.Seller,
		})
	}

	return OrderResponse{
		OrderID:          o.OrderID,
		Items:            items,
		ItemCount:        o.ItemCount(),
		Subtotal:         o.Subtotal,
		Shipping:         o.Shipping,
		Tax:              o.Tax,
		Total:            o.Total,
		DeliveryLocation: o.DeliveryLocation,
		PaymentMethod:    string(o.PaymentMethod),
		PaymentLabel:     o.PaymentMethod.Label(),
		Notes:            o.Notes,
		OrderDate:        o.OrderDate,
		Status:           string(o.Status),
	}
}
