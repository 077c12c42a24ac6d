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

type DefaultTaskSubmissionRepository struct {
	DB *gorm.DB
}

func NewDefaultTaskSubmissionRepository(db *gorm.DB) *DefaultTaskSubmissionRepository {
	return &DefaultTaskSubmissionRepository{DB: db}
}

func (r *DefaultTaskSubmissionRepository) CreateSubmission(ctx context.Context, submission *domain.TaskSubmission) error {
	db := postgres.DBFromContext(ctx, r.DB)
	submissionModel := mappers.ToGORMSubmission(submission)
	if err := db.Create(submissionModel).Error; err != nil {
		// A concurrent submit for the same (user, product) pair loses the
		// race at the unique index and must surface as the same conflict
		// as the application-level pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrTaskAlreadyDone
		}
		return err
	}
	submission.CreatedAt = submissionModel.CreatedAt
	return nil
}

func (r *DefaultTaskSubmissionRepository) HasSubmission(ctx context.Context, userID, productID string) (bool, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var count int64
	if err := db.Model(&models.TaskSubmissionModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultTaskSubmissionRepository) GetSubmissionsByUserID(ctx context.Context, userID string) ([]*domain.TaskSubmission, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var submissionModels []models.TaskSubmissionModel
	if err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissionModels).Error; err != nil {
		return nil, err
	}

	submissions := make([]*domain.TaskSubmission, len(submissionModels))
	for i, submissionModel := range submissionModels {
		submissions[i] = mappers.ToDomainSubmission(&submissionModel)
	}
	return submissions, nil
}

func (r *DefaultTaskSubmissionRepository) ListSubmittedProductIDs(ctx context.Context, userID string) ([]string, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var productIDs []string
	if err := db.Model(&models.TaskSubmissionModel{}).
		Where("user_id = ?", userID).
		Pluck("product_id", &productIDs).Error; err != nil {
		return nil, err
	}
	return productIDs, nil
}

func (r *DefaultTaskSubmissionRepository) CountSubmissions(ctx context.Context) (int64, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var total int64
	if err := db.Model(&models.TaskSubmissionModel{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *DefaultTaskSubmissionRepository) CountSubmissionsSince(ctx context.Context, since time.Time) (int64, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var total int64
	if err := db.Model(&models.TaskSubmissionModel{}).
		Where("created_at >= ?", since).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
