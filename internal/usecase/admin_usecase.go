package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/kafka"
	"github.com/earnly/earnly-task-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	actionSetBalance     = "set_balance"
	actionSetOverrides   = "set_overrides"
	actionApproveDeposit = "approve_deposit"
	actionRejectDeposit  = "reject_deposit"
	actionResetTasks     = "reset_tasks"
	actionUpdateWallet   = "update_wallet"
)

type AdminSignupInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

type DashboardStats struct {
	TotalUsers         int64
	TotalSubmissions   int64
	TodaysTransactions int64
	PendingPayout      decimal.Decimal
}

type AdminUsecase interface {
	AdminSignup(ctx context.Context, input *AdminSignupInput) (*domain.Admin, error)
	AdminLogin(ctx context.Context, username, password string) (*domain.Admin, error)
	SetUserBalance(ctx context.Context, adminID, userID string, balance decimal.Decimal) (*domain.User, error)
	SetUserNegativeOverrides(ctx context.Context, adminID, userID string, productIDs []string, negativeAmount decimal.Decimal) error
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetUserDetails(ctx context.Context, userID string) (*UserDetails, error)
	GetUserDeposits(ctx context.Context, userID string) ([]*domain.Deposit, error)
	ApproveDeposit(ctx context.Context, adminID, depositID string) (*domain.Deposit, error)
	RejectDeposit(ctx context.Context, adminID, depositID string) (*domain.Deposit, error)
	UpdateUserWallet(ctx context.Context, adminID, userID, walletAddress, walletNetwork string) error
	ResetUserTasks(ctx context.Context, adminID, userID string) error
}

type DefaultAdminUsecase struct {
	AdminRepo      domain.AdminRepository
	UserRepo       domain.UserRepository
	DepositRepo    domain.DepositRepository
	WithdrawalRepo domain.WithdrawalRepository
	SubmissionRepo domain.TaskSubmissionRepository
	OverrideRepo   domain.UserTaskOverrideRepository
	TaskUsecase    TaskUsecase
	TxManager      domain.TxManager
	Publisher      *kafka.DefaultKafkaPublisher
	Metrics        *metrics.TaskMetrics
}

func NewDefaultAdminUsecase(
	adminRepo domain.AdminRepository,
	userRepo domain.UserRepository,
	depositRepo domain.DepositRepository,
	withdrawalRepo domain.WithdrawalRepository,
	submissionRepo domain.TaskSubmissionRepository,
	overrideRepo domain.UserTaskOverrideRepository,
	taskUsecase TaskUsecase,
	txManager domain.TxManager,
	publisher *kafka.DefaultKafkaPublisher,
	taskMetrics *metrics.TaskMetrics) *DefaultAdminUsecase {

	return &DefaultAdminUsecase{
		AdminRepo:      adminRepo,
		UserRepo:       userRepo,
		DepositRepo:    depositRepo,
		WithdrawalRepo: withdrawalRepo,
		SubmissionRepo: submissionRepo,
		OverrideRepo:   overrideRepo,
		TaskUsecase:    taskUsecase,
		TxManager:      txManager,
		Publisher:      publisher,
		Metrics:        taskMetrics,
	}
}

func (uc *DefaultAdminUsecase) AdminSignup(ctx context.Context, input *AdminSignupInput) (*domain.Admin, error) {
	existing, err := uc.AdminRepo.FindAdminByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAdminExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: string(passwordHash),
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uc.AdminRepo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (uc *DefaultAdminUsecase) AdminLogin(ctx context.Context, username, password string) (*domain.Admin, error) {
	admin, err := uc.AdminRepo.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, domain.ErrAdminInactive
	}
	return admin, nil
}

// SetUserBalance is an absolute overwrite, the one path that may legitimately
// push a balance negative. Every call leaves an audit row.
func (uc *DefaultAdminUsecase) SetUserBalance(ctx context.Context, adminID, userID string, balance decimal.Decimal) (*domain.User, error) {
	if _, err := uc.UserRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	err := uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.UserRepo.SetBalance(ctx, userID, balance); err != nil {
			return err
		}
		return uc.recordAction(ctx, adminID, actionSetBalance, userID, fmt.Sprintf("balance=%s", balance.String()))
	})
	if err != nil {
		return nil, err
	}
	return uc.UserRepo.GetUserByID(ctx, userID)
}

func (uc *DefaultAdminUsecase) SetUserNegativeOverrides(ctx context.Context, adminID, userID string, productIDs []string, negativeAmount decimal.Decimal) error {
	if _, err := uc.UserRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}

	return uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		for _, productID := range productIDs {
			override := &domain.UserTaskOverride{
				ID:             uuid.NewString(),
				UserID:         userID,
				ProductID:      productID,
				NegativeAmount: negativeAmount,
				CreatedAt:      time.Now(),
				UpdatedAt:      time.Now(),
			}
			if err := uc.OverrideRepo.UpsertOverride(ctx, override); err != nil {
				return err
			}
		}
		return uc.recordAction(ctx, adminID, actionSetOverrides, userID,
			fmt.Sprintf("products=%d amount=%s", len(productIDs), negativeAmount.String()))
	})
}

func (uc *DefaultAdminUsecase) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := uc.UserRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalSubmissions, err := uc.SubmissionRepo.CountSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todays, err := uc.SubmissionRepo.CountSubmissionsSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	pendingPayout, err := uc.WithdrawalRepo.SumPendingWithdrawals(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:         totalUsers,
		TotalSubmissions:   totalSubmissions,
		TodaysTransactions: todays,
		PendingPayout:      pendingPayout,
	}, nil
}

func (uc *DefaultAdminUsecase) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return uc.UserRepo.ListUsers(ctx)
}

func (uc *DefaultAdminUsecase) GetUserDetails(ctx context.Context, userID string) (*UserDetails, error) {
	user, err := uc.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	deposits, err := uc.DepositRepo.GetDepositsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	withdrawals, err := uc.WithdrawalRepo.GetWithdrawalsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserDetails{User: user, Deposits: deposits, Withdrawals: withdrawals}, nil
}

func (uc *DefaultAdminUsecase) GetUserDeposits(ctx context.Context, userID string) ([]*domain.Deposit, error) {
	return uc.DepositRepo.GetDepositsByUserID(ctx, userID)
}

// ApproveDeposit marks the deposit completed and credits the user's balance
// in the same transaction.
func (uc *DefaultAdminUsecase) ApproveDeposit(ctx context.Context, adminID, depositID string) (*domain.Deposit, error) {
	var approved *domain.Deposit

	err := uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		deposit, err := uc.DepositRepo.GetDepositByID(ctx, depositID)
		if err != nil {
			return err
		}
		if deposit.Status != domain.FundingPending {
			return errors.New("deposit is not pending")
		}

		if err := uc.DepositRepo.UpdateDepositStatus(ctx, depositID, domain.FundingCompleted); err != nil {
			return err
		}
		if err := uc.UserRepo.AdjustBalance(ctx, deposit.UserID, deposit.Amount); err != nil {
			return err
		}
		if err := uc.recordAction(ctx, adminID, actionApproveDeposit, deposit.UserID,
			fmt.Sprintf("deposit=%s amount=%s", depositID, deposit.Amount.String())); err != nil {
			return err
		}

		deposit.Status = domain.FundingCompleted
		approved = deposit
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.DepositsApprovedTotal.Inc()
	}
	if uc.Publisher != nil {
		event := kafka.DepositEvent{
			DepositID: approved.ID,
			UserID:    approved.UserID,
			Amount:    approved.Amount.String(),
			Status:    string(approved.Status),
		}
		if err := uc.Publisher.PublishDeposit(event); err != nil {
			slog.Error("failed to publish deposit event", "error", err.Error())
		}
	}
	return approved, nil
}

func (uc *DefaultAdminUsecase) RejectDeposit(ctx context.Context, adminID, depositID string) (*domain.Deposit, error) {
	deposit, err := uc.DepositRepo.GetDepositByID(ctx, depositID)
	if err != nil {
		return nil, err
	}

	err = uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.DepositRepo.UpdateDepositStatus(ctx, depositID, domain.FundingRejected); err != nil {
			return err
		}
		return uc.recordAction(ctx, adminID, actionRejectDeposit, deposit.UserID, "deposit="+depositID)
	})
	if err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.DepositsRejectedTotal.Inc()
	}
	deposit.Status = domain.FundingRejected
	return deposit, nil
}

func (uc *DefaultAdminUsecase) UpdateUserWallet(ctx context.Context, adminID, userID, walletAddress, walletNetwork string) error {
	return uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.UserRepo.UpdateUser(ctx, userID, &domain.UserUpdate{
			WalletAddress: &walletAddress,
			WalletNetwork: &walletNetwork,
		}); err != nil {
			return err
		}
		return uc.recordAction(ctx, adminID, actionUpdateWallet, userID, walletNetwork)
	})
}

func (uc *DefaultAdminUsecase) ResetUserTasks(ctx context.Context, adminID, userID string) error {
	return uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.TaskUsecase.ResetUserTasks(ctx, userID); err != nil {
			return err
		}
		return uc.recordAction(ctx, adminID, actionResetTasks, userID, "")
	})
}

func (uc *DefaultAdminUsecase) recordAction(ctx context.Context, adminID, action, targetID, details string) error {
	return uc.AdminRepo.RecordAction(ctx, &domain.AdminAction{
		ID:        uuid.NewString(),
		AdminID:   adminID,
		Action:    action,
		TargetID:  targetID,
		Details:   details,
		CreatedAt: time.Now(),
	})
}
