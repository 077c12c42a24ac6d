package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/kafka"
	"github.com/earnly/earnly-task-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type UpdateProfileInput struct {
	Name            *string
	WalletAddress   *string
	Phone           *string
	WalletNetwork   *string
	Email           *string
	Country         *string
	ProfilePicture  *string
	CurrentPassword *string
	NewPassword     *string
}

type FundingInput struct {
	Network       string
	WalletAddress string
	Amount        decimal.Decimal
}

type UserDetails struct {
	User        *domain.User
	Deposits    []*domain.Deposit
	Withdrawals []*domain.Withdrawal
}

type UserUsecase interface {
	UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) (*domain.User, error)
	CreateDeposit(ctx context.Context, userID string, input *FundingInput) (*domain.Deposit, error)
	CreateWithdrawal(ctx context.Context, userID string, input *FundingInput) (*domain.Withdrawal, error)
	GetUserDetails(ctx context.Context, userID string) (*UserDetails, error)
}

type DefaultUserUsecase struct {
	UserRepo       domain.UserRepository
	DepositRepo    domain.DepositRepository
	WithdrawalRepo domain.WithdrawalRepository
	Publisher      *kafka.DefaultKafkaPublisher
	Metrics        *metrics.TaskMetrics
}

func NewDefaultUserUsecase(
	userRepo domain.UserRepository,
	depositRepo domain.DepositRepository,
	withdrawalRepo domain.WithdrawalRepository,
	publisher *kafka.DefaultKafkaPublisher,
	taskMetrics *metrics.TaskMetrics) *DefaultUserUsecase {

	return &DefaultUserUsecase{
		UserRepo:       userRepo,
		DepositRepo:    depositRepo,
		WithdrawalRepo: withdrawalRepo,
		Publisher:      publisher,
		Metrics:        taskMetrics,
	}
}

func (uc *DefaultUserUsecase) UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) (*domain.User, error) {
	user, err := uc.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := &domain.UserUpdate{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Country:        input.Country,
		ProfilePicture: input.ProfilePicture,
		WalletAddress:  input.WalletAddress,
		WalletNetwork:  input.WalletNetwork,
	}

	if input.CurrentPassword != nil && input.NewPassword != nil {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*input.CurrentPassword)) != nil {
			return nil, domain.ErrWrongPassword
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash := string(passwordHash)
		patch.PasswordHash = &hash
	}

	if err := uc.UserRepo.UpdateUser(ctx, userID, patch); err != nil {
		return nil, err
	}
	return uc.UserRepo.GetUserByID(ctx, userID)
}

func (uc *DefaultUserUsecase) CreateDeposit(ctx context.Context, userID string, input *FundingInput) (*domain.Deposit, error) {
	deposit := &domain.Deposit{
		ID:            uuid.NewString(),
		UserID:        userID,
		Network:       input.Network,
		WalletAddress: input.WalletAddress,
		Amount:        input.Amount,
		Status:        domain.FundingPending,
		CreatedAt:     time.Now(),
	}
	if err := uc.DepositRepo.CreateDeposit(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// CreateWithdrawal records a pending withdrawal request. The balance is not
// debited here: funds leave the account when an admin pays the request out.
func (uc *DefaultUserUsecase) CreateWithdrawal(ctx context.Context, userID string, input *FundingInput) (*domain.Withdrawal, error) {
	user, err := uc.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Balance.LessThan(input.Amount) {
		return nil, domain.ErrInsufficientBalance
	}

	withdrawal := &domain.Withdrawal{
		ID:            uuid.NewString(),
		UserID:        userID,
		Network:       input.Network,
		WalletAddress: input.WalletAddress,
		Amount:        input.Amount,
		Status:        domain.FundingPending,
		CreatedAt:     time.Now(),
	}
	if err := uc.WithdrawalRepo.CreateWithdrawal(ctx, withdrawal); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.WithdrawalsRequestedTotal.Inc()
	}
	if uc.Publisher != nil {
		event := kafka.WithdrawalEvent{
			WithdrawalID: withdrawal.ID,
			UserID:       userID,
			Amount:       withdrawal.Amount.String(),
			Status:       string(withdrawal.Status),
		}
		if err := uc.Publisher.PublishWithdrawal(event); err != nil {
			slog.Error("failed to publish withdrawal event", "error", err.Error())
		}
	}
	return withdrawal, nil
}

func (uc *DefaultUserUsecase) GetUserDetails(ctx context.Context, userID string) (*UserDetails, error) {
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

	return &UserDetails{
		User:        user,
		Deposits:    deposits,
		Withdrawals: withdrawals,
	}, nil
}
