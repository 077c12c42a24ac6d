package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductModel struct {
	ID             string          `gorm:"primaryKey;type:uuid"`
	Name           string          `gorm:"not null"`
	Image          string
	Price          decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	NegativeAmount decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	EndDate        time.Time       `gorm:"index:idx_products_active_end"`
	IsActive       bool            `gorm:"index:idx_products_active_end;default:true"`
	CreatedAt      time.Time       `gorm:"index:idx_products_created_at"`
	UpdatedAt      time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

type UserTaskOverrideModel struct {
	ID             string          `gorm:"primaryKey;type:uuid"`
	UserID         string          `gorm:"type:uuid;not null;uniqueIndex:idx_overrides_user_product"`
	ProductID      string          `gorm:"type:uuid;not null;uniqueIndex:idx_overrides_user_product"`
	NegativeAmount decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UserTaskOverrideModel) TableName() string {
	return "user_task_overrides"
}
