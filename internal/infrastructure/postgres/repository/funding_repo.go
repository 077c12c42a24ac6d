package repository

import (
	"context"
	"errors"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/mappers"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultDepositRepository struct {
	DB *gorm.DB
}

func NewDefaultDepositRepository(db *gorm.DB) *DefaultDepositRepository {
	return &DefaultDepositRepository{DB: db}
}

func (r *DefaultDepositRepository) CreateDeposit(ctx context.Context, deposit *domain.Deposit) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Create(mappers.ToGORMDeposit(deposit)).Error
}

func (r *DefaultDepositRepository) GetDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var depositModel models.DepositModel
	if err := db.First(&depositModel, "id = ?", depositID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDeposit(&depositModel), nil
}

func (r *DefaultDepositRepository) GetDepositsByUserID(ctx context.Context, userID string) ([]*domain.Deposit, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var depositModels []models.DepositModel
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&depositModels).Error; err != nil {
		return nil, err
	}

	deposits := make([]*domain.Deposit, len(depositModels))
	for i, depositModel := range depositModels {
		deposits[i] = mappers.ToDomainDeposit(&depositModel)
	}
	return deposits, nil
}

func (r *DefaultDepositRepository) UpdateDepositStatus(ctx context.Context, depositID string, status domain.FundingStatus) error {
	db := postgres.DBFromContext(ctx, r.DB)
	result := db.Model(&models.DepositModel{}).
		Where("id = ?", depositID).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepositNotFound
	}
	return nil
}

type DefaultWithdrawalRepository struct {
	DB *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{DB: db}
}

func (r *DefaultWithdrawalRepository) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Create(mappers.ToGORMWithdrawal(withdrawal)).Error
}

func (r *DefaultWithdrawalRepository) GetWithdrawalsByUserID(ctx context.Context, userID string) ([]*domain.Withdrawal, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var withdrawalModels []models.WithdrawalModel
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawalModels).Error; err != nil {
		return nil, err
	}

	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i, withdrawalModel := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&withdrawalModel)
	}
	return withdrawals, nil
}

func (r *DefaultWithdrawalRepository) SumPendingWithdrawals(ctx context.Context) (decimal.Decimal, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var sum decimal.NullDecimal
	if err := db.Model(&models.WithdrawalModel{}).
		Where("status = ?", string(domain.FundingPending)).
		Select("SUM(amount)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
