package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []CartItem
		subtotal string
		shipping string
		tax      string
		total    string
	}{
		{
			name:     "empty cart is all zeros",
			items:    nil,
			subtotal: "0",
			shipping: "0",
			tax:      "0",
			total:    "0",
		},
		{
			name: "below free-shipping threshold pays the flat fee",
			items: []CartItem{
				newTestItem("Handmade Ceramic Mug", "25.99", 2),
			},
			subtotal: "51.98",
			shipping: "10",
			tax:      "4.16",
			total:    "66.14",
		},
		{
			name: "above the threshold ships free",
			items: []CartItem{
				newTestItem("Leather Wallet", "75", 2),
			},
			subtotal: "150",
			shipping: "0",
			tax:      "12",
			total:    "162",
		},
		{
			name: "exactly at the threshold still pays shipping",
			items: []CartItem{
				newTestItem("Wooden Jewelry Box", "50", 2),
			},
			subtotal: "100",
			shipping: "10",
			tax:      "8",
			total:    "118",
		},
		{
			name: "tax rounds to cents",
			items: []CartItem{
				newTestItem("Organic Raw Honey", "12.99", 1),
			},
			subtotal: "12.99",
			shipping: "10",
			tax:      "1.04", // 1.0392 rounded
			total:    "24.03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.items)

			assert.Equal(t, tt.subtotal, totals.Subtotal.String())
			assert.Equal(t, tt.shipping, totals.Shipping.String())
			assert.Equal(t, tt.tax, totals.Tax.String())
			assert.Equal(t, tt.total, totals.Total.String())
		})
	}
}

func TestComputeTotals_IsPure(t *testing.T) {
	items := []CartItem{newTestItem("Wool Scarf", "35.99", 1)}

	first := ComputeTotals(items)
	second := ComputeTotals(items)

	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, 1, items[0].Quantity)
}
