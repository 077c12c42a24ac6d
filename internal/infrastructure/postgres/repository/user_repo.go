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
	"gorm.io/gorm/clause"
)

type DefaultUserRepository struct {
	DB *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{DB: db}
}

func (r *DefaultUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	db := postgres.DBFromContext(ctx, r.DB)
	userModel := mappers.ToGORMUser(user)
	if err := db.Create(userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *DefaultUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var userModel models.UserModel
	if err := db.First(&userModel, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultUserRepository) GetUserByIDForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var userModel models.UserModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&userModel, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserWhere(ctx, "username = ?", username)
}

func (r *DefaultUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserWhere(ctx, "email = ?", email)
}

func (r *DefaultUserRepository) GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return r.getUserWhere(ctx, "referral_code = ?", code)
}

func (r *DefaultUserRepository) getUserWhere(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var userModel models.UserModel
	if err := db.First(&userModel, append([]interface{}{query}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultUserRepository) GetReferredUsers(ctx context.Context, referrerID string) ([]*domain.User, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var userModels []models.UserModel
	if err := db.Where("referred_by_id = ?", referrerID).Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, len(userModels))
	for i, userModel := range userModels {
		users[i] = mappers.ToDomainUser(&userModel)
	}
	return users, nil
}

func (r *DefaultUserRepository) UpdateUser(ctx context.Context, userID string, patch *domain.UserUpdate) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Country != nil {
		updates["country"] = *patch.Country
	}
	if patch.ProfilePicture != nil {
		updates["profile_picture"] = *patch.ProfilePicture
	}
	if patch.WalletAddress != nil {
		updates["wallet_address"] = *patch.WalletAddress
	}
	if patch.WalletNetwork != nil {
		updates["wallet_network"] = *patch.WalletNetwork
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}
	if len(updates) == 0 {
		return nil
	}

	db := postgres.DBFromContext(ctx, r.DB)
	return db.Model(&models.UserModel{}).Where("id = ?", userID).Updates(updates).Error
}

// AdjustBalance is the single relative-mutation path for user balances:
// submissions, referral bonuses, deposit approvals and withdrawals all
// funnel through it.
func (r *DefaultUserRepository) AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal) error {
	db := postgres.DBFromContext(ctx, r.DB)
	result := db.Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *DefaultUserRepository) SetBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	db := postgres.DBFromContext(ctx, r.DB)
	result := db.Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *DefaultUserRepository) SetCompletedTasks(ctx context.Context, userID string, completed int) error {
	db := postgres.DBFromContext(ctx, r.DB)
	result := db.Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("completed_tasks", completed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *DefaultUserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var userModels []models.UserModel
	if err := db.Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, len(userModels))
	for i, userModel := range userModels {
		users[i] = mappers.ToDomainUser(&userModel)
	}
	return users, nil
}

func (r *DefaultUserRepository) CountUsers(ctx context.Context) (int64, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var total int64
	if err := db.Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *DefaultUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}
