package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

// CustomOrder is a submitted custom-design request. Only the uploaded file's
// name is recorded; upload storage lives elsewhere.
type CustomOrder struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	Email       string                  `gorm:"column:email;not null"`
	CustomText  *string                 `gorm:"column:custom_text"`
	Description *string                 `gorm:"column:description"`
	FileName    *string                 `gorm:"column:file_name"`
	Status      enums.CustomOrderStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
}

func (CustomOrder) TableName() string { return "custom_orders" }
