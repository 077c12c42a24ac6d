package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// The unique index on (user_id, product_id) is the storage-level guarantee
// against concurrent duplicate submissions; the usecase's pre-check is only
// an optimization.
type TaskSubmissionModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	UserID        string          `gorm:"type:uuid;not null;uniqueIndex:idx_submissions_user_product"`
	ProductID     string          `gorm:"type:uuid;not null;uniqueIndex:idx_submissions_user_product"`
	ProfitEarned  decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	AmountDebited decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Product       ProductModel    `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time       `gorm:"index:idx_submissions_created_at"`
}

func (TaskSubmissionModel) TableName() string {
	return "task_submissions"
}

type ReferralBonusModel struct {
	ID               string              `gorm:"primaryKey;type:uuid"`
	ReferrerID       string              `gorm:"type:uuid;not null;index"`
	ReferredUserID   string              `gorm:"type:uuid;not null;index"`
	TaskSubmissionID string              `gorm:"type:uuid;not null;index"`
	TaskSubmission   TaskSubmissionModel `gorm:"foreignKey:TaskSubmissionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BonusAmount      decimal.Decimal     `gorm:"type:numeric(18,6);not null"`
	CreatedAt        time.Time
}

func (ReferralBonusModel) TableName() string {
	return "referral_bonuses"
}
