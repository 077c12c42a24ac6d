package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReferralBonusRate is the share of a submission's profit credited to each
// directly referred user. Funded by the platform, not the referrer.
var ReferralBonusRate = decimal.RequireFromString("0.25")

type ReferralBonus struct {
	ID               string
	ReferrerID       string
	ReferredUserID   string
	TaskSubmissionID string
	BonusAmount      decimal.Decimal
	CreatedAt        time.Time
}

type ReferralBonusRepository interface {
	CreateBonus(ctx context.Context, bonus *ReferralBonus) error
	GetBonusesByReferrerID(ctx context.Context, referrerID string) ([]*ReferralBonus, error)
}
