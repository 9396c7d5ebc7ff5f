package catalog

import "time"

// Promotion represents a storefront-wide offer shown on the offers page.
// Promotions are static marketing content, not priced discounts.
type Promotion struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ValidUntil  time.Time `json:"valid_until"`
}

// ActivePromotions returns the built-in promotions that have not expired at
// the given time, in display order.
func ActivePromotions(now time.Time) []Promotion {
	active := make([]Promotion, 0, len(builtinPromotions))
	for _, p := range builtinPromotions {
		if p.ValidUntil.After(now) {
			active = append(active, p)
		}
	}
	return active
}

var builtinPromotions = []Promotion{
	{
		ID:          1,
		Title:       "10% off on Handmade Goods",
		Description: "Use code HAND10 at checkout",
		ValidUntil:  time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC),
	},
	{
		ID:          2,
		Title:       "Free Shipping over NPR 5000",
		Description: "Automatic at checkout",
		ValidUntil:  time.Date(2026, time.March, 1, 23, 59, 59, 0, time.UTC),
	},
}
