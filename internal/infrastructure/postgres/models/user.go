package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserModel struct {
	ID             string          `gorm:"primaryKey;type:uuid"`
	Phone          string
	Email          string          `gorm:"uniqueIndex"`
	Username       string          `gorm:"uniqueIndex"`
	Name           string
	PasswordHash   string
	Country        string
	ProfilePicture string
	WalletAddress  string
	WalletNetwork  string
	Balance        decimal.Decimal `gorm:"type:numeric(18,6);not null;default:0"`
	Level          int             `gorm:"not null;default:1"`
	CompletedTasks int             `gorm:"not null;default:0"`
	ReferralCode   string          `gorm:"uniqueIndex"`
	InviteCode     string
	ReferredByID   *string         `gorm:"type:uuid;index"`
	CreatedAt      time.Time       `gorm:"index:idx_users_created_at"`
	UpdatedAt      time.Time
}

func (UserModel) TableName() string {
	return "users"
}
