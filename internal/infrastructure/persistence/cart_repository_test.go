package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB opens a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormCartRepository_FindByUser(t *testing.T) {
	t.Run("decodes the stored item list", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCartRepository(gormDB)

		userID := uuid.New()
		productID := uuid.New()
		items := `[{"product_id":"` + productID.String() + `","name":"Handmade Ceramic Mug","unit_price":"25.99","quantity":2,"image":"","seller":"Ceramic Studio"}]`

		rows := sqlmock.NewRows([]string{"user_id", "items"}).AddRow(userID, items)
		mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		cart, err := repo.FindByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, cart.UserID)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, productID, cart.Items[0].ProductID)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.True(t, cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("25.99")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a missing row to not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCartRepository(gormDB)

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		cart, err := repo.FindByUser(context.Background(), userID)

		assert.Nil(t, cart)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a corrupt item document", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCartRepository(gormDB)

		userID := uuid.New()
		rows := sqlmock.NewRows([]string{"user_id", "items"}).AddRow(userID, "{broken")
		mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		_, err := repo.FindByUser(context.Background(), userID)

		assert.Error(t, err)
	})
}

func TestGormCartRepository_Save(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormCartRepository(gormDB)

	cart := shopping.NewCart(uuid.New())
	require.NoError(t, cart.AddItem(shopping.CartItem{
		ProductID: uuid.New(),
		Name:      "Organic Raw Honey",
		UnitPrice: decimal.RequireFromString("12.99"),
		Quantity:  1,
	}))

	mock.ExpectExec(`INSERT INTO "carts" .* ON CONFLICT \("user_id"\) DO UPDATE SET .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), cart)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
