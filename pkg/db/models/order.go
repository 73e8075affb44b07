package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

// OrderItem is a line-item snapshot frozen at order creation.
type OrderItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// Order is the persisted order record. It is immutable from the storefront's
// perspective once created; only payment processing flips its status.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Items            []OrderItem       `gorm:"column:items;type:jsonb;serializer:json;not null"`
	Total            decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	CustomerEmail    string            `gorm:"column:customer_email;not null"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	PaymentSessionID *string           `gorm:"column:payment_session_id"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }
