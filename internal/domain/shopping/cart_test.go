package shopping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(name string, price string, quantity int) CartItem {
	p, _ := decimal.NewFromString(price)
	return CartItem{
		ProductID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Name:      name,
		UnitPrice: p,
		Quantity:  quantity,
	}
}

func TestCart_AddItem(t *testing.T) {
	t.Run("appends a new line", func(t *testing.T) {
		cart := NewCart(uuid.New())

		err := cart.AddItem(newTestItem("Handmade Ceramic Mug", "25.99", 1))

		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("merges quantity into an existing line", func(t *testing.T) {
		cart := NewCart(uuid.New())
		item := newTestItem("Organic Raw Honey", "12.99", 2)

		require.NoError(t, cart.AddItem(item))
		item.Quantity = 3
		require.NoError(t, cart.AddItem(item))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		cart := NewCart(uuid.New())

		missing := newTestItem("Wool Scarf", "35.99", 1)
		missing.ProductID = uuid.Nil
		assert.Error(t, cart.AddItem(missing))

		unnamed := newTestItem(" ", "35.99", 1)
		unnamed.Name = "  "
		assert.Error(t, cart.AddItem(unnamed))

		negative := newTestItem("Wool Scarf", "35.99", 1)
		negative.UnitPrice = decimal.NewFromInt(-1)
		assert.Error(t, cart.AddItem(negative))

		zeroQty := newTestItem("Wool Scarf", "35.99", 0)
		assert.Error(t, cart.AddItem(zeroQty))

		assert.True(t, cart.IsEmpty())
	})
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("replaces the line quantity", func(t *testing.T) {
		cart := NewCart(uuid.New())
		item := newTestItem("Leather Wallet", "54.99", 1)
		require.NoError(t, cart.AddItem(item))

		cart.SetQuantity(item.ProductID, 4)

		assert.Equal(t, 4, cart.Items[0].Quantity)
	})

	t.Run("ignores quantities below one", func(t *testing.T) {
		cart := NewCart(uuid.New())
		item := newTestItem("Leather Wallet", "54.99", 2)
		require.NoError(t, cart.AddItem(item))

		cart.SetQuantity(item.ProductID, 0)
		cart.SetQuantity(item.ProductID, -3)

		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("ignores unknown product ids", func(t *testing.T) {
		cart := NewCart(uuid.New())
		item := newTestItem("Leather Wallet", "54.99", 2)
		require.NoError(t, cart.AddItem(item))

		cart.SetQuantity(uuid.New(), 7)

		assert.Equal(t, 2, cart.Items[0].Quantity)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart(uuid.New())
	first := newTestItem("Handmade Ceramic Mug", "25.99", 1)
	second := newTestItem("Organic Raw Honey", "12.99", 1)
	require.NoError(t, cart.AddItem(first))
	require.NoError(t, cart.AddItem(second))

	cart.RemoveItem(first.ProductID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, second.ProductID, cart.Items[0].ProductID)

	// Removing again is a no-op
	cart.RemoveItem(first.ProductID)
	assert.Len(t, cart.Items, 1)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart(uuid.New())
	require.NoError(t, cart.AddItem(newTestItem("Wool Scarf", "35.99", 3)))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.ItemCount())
}

func TestCart_ItemCount(t *testing.T) {
	cart := NewCart(uuid.New())
	require.NoError(t, cart.AddItem(newTestItem("Handmade Ceramic Mug", "25.99", 2)))
	require.NoError(t, cart.AddItem(newTestItem("Organic Raw Honey", "12.99", 3)))

	assert.Equal(t, 5, cart.ItemCount())
}

func TestCart_Snapshot(t *testing.T) {
	cart := NewCart(uuid.New())
	item := newTestItem("Wooden Jewelry Box", "49.99", 1)
	require.NoError(t, cart.AddItem(item))

	snapshot := cart.Snapshot()

	cart.SetQuantity(item.ProductID, 9)
	cart.Clear()

	require.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot[0].Quantity)
}
