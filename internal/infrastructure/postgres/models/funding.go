package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	UserID        string          `gorm:"type:uuid;not null;index"`
	Network       string          `gorm:"not null"`
	WalletAddress string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Status        string          `gorm:"not null;default:pending;index"`
	CreatedAt     time.Time       `gorm:"index:idx_deposits_created_at"`
	UpdatedAt     time.Time
}

func (DepositModel) TableName() string {
	return "deposits"
}

type WithdrawalModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	UserID        string          `gorm:"type:uuid;not null;index"`
	Network       string          `gorm:"not null"`
	WalletAddress string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Status        string          `gorm:"not null;default:pending;index"`
	CreatedAt     time.Time       `gorm:"index:idx_withdrawals_created_at"`
	UpdatedAt     time.Time
}

func (WithdrawalModel) TableName() string {
	return "withdrawals"
}
