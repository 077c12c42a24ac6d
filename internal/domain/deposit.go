package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type FundingStatus string

const (
	FundingPending   FundingStatus = "pending"
	FundingCompleted FundingStatus = "completed"
	FundingRejected  FundingStatus = "rejected"
)

type Deposit struct {
	ID            string
	UserID        string
	Network       string
	WalletAddress string
	Amount        decimal.Decimal
	Status        FundingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Withdrawal struct {
	ID            string
	UserID        string
	Network       string
	WalletAddress string
	Amount        decimal.Decimal
	Status        FundingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type DepositRepository interface {
	CreateDeposit(ctx context.Context, deposit *Deposit) error
	GetDepositByID(ctx context.Context, depositID string) (*Deposit, error)
	GetDepositsByUserID(ctx context.Context, userID string) ([]*Deposit, error)
	UpdateDepositStatus(ctx context.Context, depositID string, status FundingStatus) error
}

type WithdrawalRepository interface {
	CreateWithdrawal(ctx context.Context, withdrawal *Withdrawal) error
	GetWithdrawalsByUserID(ctx context.Context, userID string) ([]*Withdrawal, error)
	SumPendingWithdrawals(ctx context.Context) (decimal.Decimal, error)
}
