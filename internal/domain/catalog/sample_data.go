package catalog

import (
	"time"

	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sampleSellerID is the fixed seller attached to the built-in catalog so
// that sample listings behave like any other product on the dashboard.
var sampleSellerID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")

// SampleProducts returns the built-in catalog served when the database is
// unavailable or holds no listings yet.
func SampleProducts() []Product {
	samples := []struct {
		name     string
		price    string
		stock    int
		image    string
		category string
		location string
		rating   string
		seller   string
	}{
		{"Handmade Ceramic Mug", "25.99", 15, "https://images.unsplash.com/photo-1544787219-7f47ccb76574?auto=format&fit=crop&w=400", "Handmade", "Kathmandu", "4.8", "Ceramic Studio"},
		{"Organic Raw Honey", "12.99", 30, "https://images.unsplash.com/photo-1587049352851-8d4e89133924?auto=format&fit=crop&w=400", "Food", "Lalitpur", "4.9", "Honey Farm"},
		{"Wooden Jewelry Box", "49.99", 8, "https://images.unsplash.com/photo-1607083206968-13611e3d76db?auto=format&fit=crop&w=400", "Handmade", "Pokhara", "4.7", "Wood Crafts"},
		{"Wool Scarf", "35.99", 12, "", "Clothing", "Kathmandu", "4.6", "Mountain Weavers"},
		{"Leather Wallet", "54.99", 5, "", "Accessories", "Bhaktapur", "4.5", "Leather Works"},
	}

	now := time.Now()
	products := make([]Product, 0, len(samples))
	for i, s := range samples {
		price, _ := decimal.NewFromString(s.price)
		rating, _ := decimal.NewFromString(s.rating)
		products = append(products, Product{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.name)),
				CreatedAt: now.Add(-time.Duration(i) * time.Hour),
				UpdatedAt: now,
			},
			Name:       s.name,
			Price:      price,
			Stock:      s.stock,
			Image:      s.image,
			Category:   s.category,
			Location:   s.location,
			Rating:     rating,
			SellerID:   sampleSellerID,
			SellerName: s.seller,
		})
	}
	return products
}
