package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	LevelStandard = 1
	LevelPremium  = 2

	// Task caps per level. A level-1 user sitting exactly at the cap is
	// prompted to upgrade instead of the generic withdraw message.
	MaxTasksStandard = 33
	MaxTasksPremium  = 38
)

// FirstTaskMinBalance is the balance floor required before the very first
// submission.
var FirstTaskMinBalance = decimal.NewFromInt(50)

type User struct {
	ID             string
	Phone          string
	Email          string
	Username       string
	Name           string
	PasswordHash   string
	Country        string
	ProfilePicture string
	WalletAddress  string
	WalletNetwork  string
	Balance        decimal.Decimal
	Level          int
	CompletedTasks int
	ReferralCode   string
	InviteCode     string
	ReferredByID   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserUpdate is a sparse patch applied to a user profile. Nil fields are
// left untouched.
type UserUpdate struct {
	Name           *string
	Email          *string
	Phone          *string
	Country        *string
	ProfilePicture *string
	WalletAddress  *string
	WalletNetwork  *string
	PasswordHash   *string
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	// GetUserByIDForUpdate reads the user row with a row-level write lock.
	// Only meaningful inside a transaction started by TxManager.
	GetUserByIDForUpdate(ctx context.Context, userID string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*User, error)
	GetReferredUsers(ctx context.Context, referrerID string) ([]*User, error)
	UpdateUser(ctx context.Context, userID string, patch *UserUpdate) error
	// AdjustBalance applies a relative delta atomically
	// (balance = balance + delta). Every balance mutation in the system
	// goes through this single write path.
	AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal) error
	SetBalance(ctx context.Context, userID string, balance decimal.Decimal) error
	SetCompletedTasks(ctx context.Context, userID string, completed int) error
	ListUsers(ctx context.Context) ([]*User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}
