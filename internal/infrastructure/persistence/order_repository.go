package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRecord is the storage row for a placed order. The item list and
// delivery location are serialized as JSON documents so the whole order
// is written atomically as one record.
type OrderRecord struct {
	OrderID          string          `gorm:"primaryKey;size:32"`
	UserID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	Items            string          `gorm:"type:text;not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Shipping         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryLocation string          `gorm:"type:text;not null"`
	PaymentMethod    string          `gorm:"size:32;not null"`
	Notes            string          `gorm:"type:text"`
	OrderDate        time.Time       `gorm:"index;not null"`
	Status           string          `gorm:"size:16;not null"`
	CreatedAt        time.Time
}

// TableName returns the table name for GORM
func (OrderRecord) TableName() string {
	return "orders"
}

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save appends a placed order to the store
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	record, err := toOrderRecord(order)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByOrderID returns the order with the given identifier
func (r *GormOrderRepository) FindByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (*ordering.Order, error) {
	var record OrderRecord
	if err := r.db.WithContext(ctx).
		First(&record, "order_id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return fromOrderRecord(&record)
}

// ListByUser returns the user's orders, most recent first
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	var records []OrderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, 0, len(records))
	for i := range records {
		order, err := fromOrderRecord(&records[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// Remove deletes the order with the given identifier; unknown ids are a
// no-op so cancellation stays idempotent
func (r *GormOrderRepository) Remove(ctx context.Context, userID uuid.UUID, orderID string) error {
	return r.db.WithContext(ctx).
		Delete(&OrderRecord{}, "order_id = ? AND user_id = ?", orderID, userID).Error
}

func toOrderRecord(order *ordering.Order) (*OrderRecord, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	location, err := json.Marshal(order.DeliveryLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to encode delivery location: %w", err)
	}

	return &OrderRecord{
		OrderID:          order.OrderID,
		UserID:           order.UserID,
		Items:            string(items),
		Subtotal:         order.Subtotal,
		Shipping:         order.Shipping,
		Tax:              order.Tax,
		Total:            order.Total,
		DeliveryLocation: string(location),
		PaymentMethod:    string(order.PaymentMethod),
		Notes:            order.Notes,
		OrderDate:        order.OrderDate,
		Status:           string(order.Status),
	}, nil
}

func fromOrderRecord(record *OrderRecord) (*ordering.Order, error) {
	var items []shopping.CartItem
	if err := json.Unmarshal([]byte(record.Items), &items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	var location ordering.DeliveryLocation
	if err := json.Unmarshal([]byte(record.DeliveryLocation), &location); err != nil {
		return nil, fmt.Errorf("failed to decode delivery location: %w", err)
	}

	return &ordering.Order{
		OrderID:          record.OrderID,
		UserID:           record.UserID,
		Items:            items,
		Subtotal:         record.Subtotal,
		Shipping:         record.Shipping,
		Tax:              record.Tax,
		Total:            record.Total,
		DeliveryLocation: location,
		PaymentMethod:    ordering.PaymentMethod(record.PaymentMethod),
		Notes:            record.Notes,
		OrderDate:        record.OrderDate,
		Status:           ordering.OrderStatus(record.Status),
	}, nil
}
