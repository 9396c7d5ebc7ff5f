package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRecord is the storage row for a cart. The item list is serialized
// as one JSON document so every save replaces the cart as a single unit.
type CartRecord struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Items     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartRecord) TableName() string {
	return "carts"
}

// GormCartRepository implements shopping.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser returns the cart owned by the user
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*shopping.Cart, error) {
	var record CartRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var items []shopping.CartItem
	if err := json.Unmarshal([]byte(record.Items), &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}

	return &shopping.Cart{UserID: record.UserID, Items: items}, nil
}

// Save creates or replaces the user's cart
func (r *GormCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart items: %w", err)
	}

	record := CartRecord{
		UserID:    cart.UserID,
		Items:     string(items),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&record).Error
}
