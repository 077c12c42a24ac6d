package domain

import (
	"context"
	"time"
)

type Admin struct {
	ID           string
	Email        string
	Username     string
	Name         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// AdminAction is the audit trail for privileged operations that bypass the
// engine's invariants (balance set, overrides, deposit decisions, task reset).
type AdminAction struct {
	ID        string
	AdminID   string
	Action    string
	TargetID  string
	Details   string
	CreatedAt time.Time
}

type PasswordReset struct {
	ID        string
	UserID    string
	Token     string
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)
	FindAdminByEmailOrUsername(ctx context.Context, email, username string) (*Admin, error)
	RecordAction(ctx context.Context, action *AdminAction) error
}

type PasswordResetRepository interface {
	CreateReset(ctx context.Context, reset *PasswordReset) error
	GetResetByToken(ctx context.Context, token string) (*PasswordReset, error)
	MarkUsed(ctx context.Context, resetID string) error
	// InvalidateActiveResets marks every unexpired, unused token of the
	// user as used.
	InvalidateActiveResets(ctx context.Context, userID string) error
}
