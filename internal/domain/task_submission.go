package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TaskSubmission is the immutable record of one user claiming one product.
// Created only inside the submission transaction, never updated or deleted.
type TaskSubmission struct {
	ID            string
	UserID        string
	ProductID     string
	ProfitEarned  decimal.Decimal
	AmountDebited decimal.Decimal
	Product       *Product
	CreatedAt     time.Time
}

type TaskSubmissionRepository interface {
	// CreateSubmission returns ErrTaskAlreadyDone when the storage-level
	// uniqueness constraint on (user_id, product_id) rejects the row.
	CreateSubmission(ctx context.Context, submission *TaskSubmission) error
	HasSubmission(ctx context.Context, userID, productID string) (bool, error)
	// GetSubmissionsByUserID returns the user's submissions newest first,
	// with the product attached.
	GetSubmissionsByUserID(ctx context.Context, userID string) ([]*TaskSubmission, error)
	ListSubmittedProductIDs(ctx context.Context, userID string) ([]string, error)
	CountSubmissions(ctx context.Context) (int64, error)
	CountSubmissionsSince(ctx context.Context, since time.Time) (int64, error)
}
