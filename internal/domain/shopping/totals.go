package shopping

import "github.com/shopspring/decimal"

// Pricing rules for the storefront. Subtotals above the free-shipping
// threshold ship free; any non-empty cart below it pays the flat fee.
var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShippingFee       = decimal.NewFromInt(10)
	TaxRate               = decimal.NewFromFloat(0.08)
)

// Totals holds the derived amounts for a cart or order
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, shipping, tax and total from an item
// list. It is a pure function of the items passed in:
//
//	subtotal = sum of unit price x quantity
//	shipping = 0 if subtotal > 100, 10 if 0 < subtotal <= 100, else 0
//	tax      = subtotal x 8%, rounded to cents
//	total    = subtotal + shipping + tax
func ComputeTotals(items []CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThanOrEqual(FreeShippingThreshold) {
		shipping = FlatShippingFee
	}

	tax := subtotal.Mul(TaxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
