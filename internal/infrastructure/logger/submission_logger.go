package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Persistent event log for submission attempts, kept separate from the
// transactional ledger so failed attempts are visible to support staff.

type SubmissionCompletedEvent struct {
	ID            uint   `gorm:"primaryKey"`
	SubmissionID  string
	UserID        string
	ProductID     string
	ProfitEarned  string
	AmountDebited string
	ReferralCount int
	Timestamp     time.Time
}

type SubmissionFailedEvent struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string
	ProductID string
	Reason    string
	Timestamp time.Time
}

type SubmissionEventLogger interface {
	LogSubmissionCompleted(ctx context.Context, event SubmissionCompletedEvent) error
	LogSubmissionFailed(ctx context.Context, event SubmissionFailedEvent) error
}

type PGSubmissionEventLogger struct {
	db *gorm.DB
}

func NewPGSubmissionEventLogger(db *gorm.DB) *PGSubmissionEventLogger {
	db.AutoMigrate(&SubmissionCompletedEvent{}, &SubmissionFailedEvent{})
	return &PGSubmissionEventLogger{db: db}
}

func (l *PGSubmissionEventLogger) LogSubmissionCompleted(ctx context.Context, event SubmissionCompletedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

func (l *PGSubmissionEventLogger) LogSubmissionFailed(ctx context.Context, event SubmissionFailedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
