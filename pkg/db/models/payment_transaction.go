package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

// PaymentTransaction is the local record of a hosted-payment session, created
// before the customer is redirected to the payment provider.
type PaymentTransaction struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	SessionID     string                  `gorm:"column:session_id;not null;uniqueIndex:idx_payment_session"`
	OrderID       uuid.UUID               `gorm:"column:order_id;type:uuid;not null;index"`
	Amount        decimal.Decimal         `gorm:"column:amount;type:numeric(12,2);not null"`
	Currency      string                  `gorm:"column:currency;not null;default:'usd'"`
	CustomerEmail string                  `gorm:"column:customer_email;not null"`
	PaymentStatus enums.PaymentStatus     `gorm:"column:payment_status;not null;default:'pending'"`
	Status        enums.TransactionStatus `gorm:"column:status;not null;default:'initiated'"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (PaymentTransaction) TableName() string { return "payment_transactions" }
