package repository

import (
	"context"
	"errors"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/mappers"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAdminRepository struct {
	DB *gorm.DB
}

func NewDefaultAdminRepository(db *gorm.DB) *DefaultAdminRepository {
	return &DefaultAdminRepository{DB: db}
}

func (r *DefaultAdminRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	db := postgres.DBFromContext(ctx, r.DB)
	if err := db.Create(mappers.ToGORMAdmin(admin)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAdminExists
		}
		return err
	}
	return nil
}

func (r *DefaultAdminRepository) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var adminModel models.AdminModel
	if err := db.First(&adminModel, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return mappers.ToDomainAdmin(&adminModel), nil
}

func (r *DefaultAdminRepository) FindAdminByEmailOrUsername(ctx context.Context, email, username string) (*domain.Admin, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var adminModel models.AdminModel
	err := db.Where("email = ? OR username = ?", email, username).First(&adminModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainAdmin(&adminModel), nil
}

func (r *DefaultAdminRepository) RecordAction(ctx context.Context, action *domain.AdminAction) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Create(&models.AdminActionModel{
		ID:        action.ID,
		AdminID:   action.AdminID,
		Action:    action.Action,
		TargetID:  action.TargetID,
		Details:   action.Details,
		CreatedAt: action.CreatedAt,
	}).Error
}

type DefaultPasswordResetRepository struct {
	DB *gorm.DB
}

func NewDefaultPasswordResetRepository(db *gorm.DB) *DefaultPasswordResetRepository {
	return &DefaultPasswordResetRepository{DB: db}
}

func (r *DefaultPasswordResetRepository) CreateReset(ctx context.Context, reset *domain.PasswordReset) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Create(&models.PasswordResetModel{
		ID:        reset.ID,
		UserID:    reset.UserID,
		Token:     reset.Token,
		Used:      reset.Used,
		ExpiresAt: reset.ExpiresAt,
		CreatedAt: reset.CreatedAt,
	}).Error
}

func (r *DefaultPasswordResetRepository) GetResetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var resetModel models.PasswordResetModel
	if err := db.First(&resetModel, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidResetToken
		}
		return nil, err
	}
	return mappers.ToDomainPasswordReset(&resetModel), nil
}

func (r *DefaultPasswordResetRepository) MarkUsed(ctx context.Context, resetID string) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Model(&models.PasswordResetModel{}).
		Where("id = ?", resetID).
		Update("used", true).Error
}

func (r *DefaultPasswordResetRepository) InvalidateActiveResets(ctx context.Context, userID string) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Model(&models.PasswordResetModel{}).
		Where("user_id = ? AND used = ? AND expires_at > ?", userID, false, time.Now()).
		Update("used", true).Error
}
