package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one catalog entry. IDs are stable small integers carried over
// from the seed catalog rather than generated.
type Product struct {
	ID          int             `gorm:"column:id;primaryKey" json:"id"`
	Category    string          `gorm:"column:category;not null;index" json:"category"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Image       string          `gorm:"column:image;not null" json:"image"`
	Description string          `gorm:"column:description;not null" json:"description"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Product) TableName() string { return "products" }
