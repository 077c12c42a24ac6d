package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/kafka"
	"github.com/earnly/earnly-task-service/internal/infrastructure/logger"
	"github.com/earnly/earnly-task-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profit rates are PERCENTAGES of the user's current balance per completed
// task: a level-1 user earns 0.75% of balance, everyone else 1%. The division
// by 100 happens at computation time.
var (
	profitRateStandard = decimal.RequireFromString("0.75")
	profitRatePremium  = decimal.NewFromInt(1)
	percentDivisor     = decimal.NewFromInt(100)
)

type TaskUsecase interface {
	SubmitTask(ctx context.Context, userID, productID string) (*domain.TaskSubmission, error)
	GetUserTasks(ctx context.Context, userID string) ([]*domain.TaskSubmission, error)
	ResetUserTasks(ctx context.Context, userID string) error
}

type DefaultTaskUsecase struct {
	UserRepo       domain.UserRepository
	ProductRepo    domain.ProductRepository
	SubmissionRepo domain.TaskSubmissionRepository
	OverrideRepo   domain.UserTaskOverrideRepository
	BonusRepo      domain.ReferralBonusRepository
	TxManager      domain.TxManager
	Publisher      *kafka.DefaultKafkaPublisher
	EventLogger    logger.SubmissionEventLogger
	Metrics        *metrics.TaskMetrics
}

func NewDefaultTaskUsecase(
	userRepo domain.UserRepository,
	productRepo domain.ProductRepository,
	submissionRepo domain.TaskSubmissionRepository,
	overrideRepo domain.UserTaskOverrideRepository,
	bonusRepo domain.ReferralBonusRepository,
	txManager domain.TxManager,
	publisher *kafka.DefaultKafkaPublisher,
	eventLogger logger.SubmissionEventLogger,
	taskMetrics *metrics.TaskMetrics) *DefaultTaskUsecase {

	return &DefaultTaskUsecase{
		UserRepo:       userRepo,
		ProductRepo:    productRepo,
		SubmissionRepo: submissionRepo,
		OverrideRepo:   overrideRepo,
		BonusRepo:      bonusRepo,
		TxManager:      txManager,
		Publisher:      publisher,
		EventLogger:    eventLogger,
		Metrics:        taskMetrics,
	}
}

// SubmitTask validates and executes one user's claim of one product. All
// checks and writes run inside a single transaction with the submitter's row
// locked, so a concurrent submission or withdrawal cannot interleave. The
// first failing check aborts with nothing persisted.
func (uc *DefaultTaskUsecase) SubmitTask(ctx context.Context, userID, productID string) (*domain.TaskSubmission, error) {
	start := time.Now()

	var submission *domain.TaskSubmission
	var userLevel int
	var referralCount int

	err := uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		user, err := uc.UserRepo.GetUserByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.Balance.IsNegative() {
			return domain.ErrNegativeBalance
		}

		alreadyDone, err := uc.SubmissionRepo.HasSubmission(ctx, userID, productID)
		if err != nil {
			return err
		}
		if alreadyDone {
			return domain.ErrTaskAlreadyDone
		}

		product, err := uc.ProductRepo.GetProductByID(ctx, productID)
		if err != nil {
			return err
		}
		if !product.Available(time.Now()) {
			return domain.ErrProductUnavailable
		}

		// Minimum balance check only for the first task
		if user.CompletedTasks == 0 && user.Balance.LessThan(domain.FirstTaskMinBalance) {
			return domain.ErrMinimumBalance
		}

		maxTasks := domain.MaxTasksPremium
		if user.Level == domain.LevelStandard {
			maxTasks = domain.MaxTasksStandard
		}
		if user.CompletedTasks >= maxTasks {
			if user.Level == domain.LevelStandard && user.CompletedTasks == domain.MaxTasksStandard {
				return domain.ErrUpgradeRequired
			}
			return domain.ErrTaskLimitReached
		}

		// Effective debit: per-user override wins over the product default
		debit := product.NegativeAmount
		override, err := uc.OverrideRepo.FindOverride(ctx, userID, productID)
		if err != nil {
			return err
		}
		if override != nil {
			debit = override.NegativeAmount
		}

		if user.Balance.LessThan(debit) {
			return domain.ErrInsufficientFunds
		}

		rate := profitRatePremium
		if user.Level == domain.LevelStandard {
			rate = profitRateStandard
		}
		profit := user.Balance.Mul(rate).Div(percentDivisor)

		submission = &domain.TaskSubmission{
			ID:            uuid.NewString(),
			UserID:        userID,
			ProductID:     productID,
			ProfitEarned:  profit,
			AmountDebited: debit,
			CreatedAt:     time.Now(),
		}
		if err := uc.SubmissionRepo.CreateSubmission(ctx, submission); err != nil {
			return err
		}
		if err := uc.UserRepo.AdjustBalance(ctx, userID, profit.Sub(debit)); err != nil {
			return err
		}
		if err := uc.UserRepo.SetCompletedTasks(ctx, userID, user.CompletedTasks+1); err != nil {
			return err
		}

		// Direct referrals only: each user referred by the submitter gets
		// 25% of the profit, funded by the platform, not the submitter.
		referredUsers, err := uc.UserRepo.GetReferredUsers(ctx, userID)
		if err != nil {
			return err
		}
		if len(referredUsers) > 0 {
			bonusAmount := profit.Mul(domain.ReferralBonusRate)
			for _, referredUser := range referredUsers {
				bonus := &domain.ReferralBonus{
					ID:               uuid.NewString(),
					ReferrerID:       userID,
					ReferredUserID:   referredUser.ID,
					TaskSubmissionID: submission.ID,
					BonusAmount:      bonusAmount,
					CreatedAt:        time.Now(),
				}
				if err := uc.BonusRepo.CreateBonus(ctx, bonus); err != nil {
					return err
				}
				if err := uc.UserRepo.AdjustBalance(ctx, referredUser.ID, bonusAmount); err != nil {
					return err
				}
			}
			referralCount = len(referredUsers)
		}

		userLevel = user.Level
		return nil
	})
	if err != nil {
		uc.observeFailure(ctx, userID, productID, err)
		return nil, err
	}

	uc.observeSuccess(ctx, submission, userLevel, referralCount, time.Since(start))
	return submission, nil
}

func (uc *DefaultTaskUsecase) GetUserTasks(ctx context.Context, userID string) ([]*domain.TaskSubmission, error) {
	return uc.SubmissionRepo.GetSubmissionsByUserID(ctx, userID)
}

// ResetUserTasks is a privileged escape hatch: it zeroes the completed-task
// counter unconditionally, bypassing every submission invariant. Only the
// admin layer calls it, and the admin layer records the audit trail.
func (uc *DefaultTaskUsecase) ResetUserTasks(ctx context.Context, userID string) error {
	if _, err := uc.UserRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return uc.UserRepo.SetCompletedTasks(ctx, userID, 0)
}

func (uc *DefaultTaskUsecase) observeSuccess(ctx context.Context, submission *domain.TaskSubmission, level, referralCount int, elapsed time.Duration) {
	slog.Info("task submitted",
		"submission_id", submission.ID,
		"user_id", submission.UserID,
		"product_id", submission.ProductID,
		"profit", submission.ProfitEarned.String(),
		"debit", submission.AmountDebited.String(),
		"referrals", referralCount,
	)

	if uc.Metrics != nil {
		uc.Metrics.SubmissionsTotal.WithLabelValues(levelLabel(level)).Inc()
		uc.Metrics.SubmissionProfitTotal.Add(submission.ProfitEarned.InexactFloat64())
		uc.Metrics.SubmissionDebitTotal.Add(submission.AmountDebited.InexactFloat64())
		uc.Metrics.ReferralBonusesTotal.Add(float64(referralCount))
		uc.Metrics.SubmissionDuration.Observe(elapsed.Seconds())
	}

	if uc.EventLogger != nil {
		if err := uc.EventLogger.LogSubmissionCompleted(ctx, logger.SubmissionCompletedEvent{
			SubmissionID:  submission.ID,
			UserID:        submission.UserID,
			ProductID:     submission.ProductID,
			ProfitEarned:  submission.ProfitEarned.String(),
			AmountDebited: submission.AmountDebited.String(),
			ReferralCount: referralCount,
			Timestamp:     time.Now(),
		}); err != nil {
			slog.Error("failed to log submission event", "error", err.Error())
		}
	}

	if uc.Publisher != nil {
		event := kafka.TaskSubmittedEvent{
			SubmissionID:  submission.ID,
			UserID:        submission.UserID,
			ProductID:     submission.ProductID,
			ProfitEarned:  submission.ProfitEarned.String(),
			AmountDebited: submission.AmountDebited.String(),
			ReferralCount: referralCount,
			SubmittedAt:   submission.CreatedAt,
		}
		if err := uc.Publisher.PublishTaskSubmitted(event); err != nil {
			slog.Error("failed to publish task event", "error", err.Error())
		}
	}
}

func (uc *DefaultTaskUsecase) observeFailure(ctx context.Context, userID, productID string, cause error) {
	reason := failureReason(cause)
	slog.Info("task submission rejected",
		"user_id", userID,
		"product_id", productID,
		"reason", reason,
	)

	if uc.Metrics != nil {
		uc.Metrics.SubmissionsFailedTotal.WithLabelValues(reason).Inc()
	}

	if uc.EventLogger != nil {
		if err := uc.EventLogger.LogSubmissionFailed(ctx, logger.SubmissionFailedEvent{
			UserID:    userID,
			ProductID: productID,
			Reason:    cause.Error(),
			Timestamp: time.Now(),
		}); err != nil {
			slog.Error("failed to log submission failure", "error", err.Error())
		}
	}
}

func levelLabel(level int) string {
	if level == domain.LevelStandard {
		return "standard"
	}
	return "premium"
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domain.ErrNegativeBalance):
		return "negative_balance"
	case errors.Is(err, domain.ErrTaskAlreadyDone):
		return "already_completed"
	case errors.Is(err, domain.ErrProductUnavailable):
		return "product_unavailable"
	case errors.Is(err, domain.ErrMinimumBalance):
		return "minimum_balance"
	case errors.Is(err, domain.ErrUpgradeRequired):
		return "upgrade_required"
	case errors.Is(err, domain.ErrTaskLimitReached):
		return "task_limit"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "internal"
	}
}
