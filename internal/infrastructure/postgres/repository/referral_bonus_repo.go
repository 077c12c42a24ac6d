package repository

import (
	"context"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/mappers"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultReferralBonusRepository struct {
	DB *gorm.DB
}

func NewDefaultReferralBonusRepository(db *gorm.DB) *DefaultReferralBonusRepository {
	return &DefaultReferralBonusRepository{DB: db}
}

func (r *DefaultReferralBonusRepository) CreateBonus(ctx context.Context, bonus *domain.ReferralBonus) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Create(mappers.ToGORMBonus(bonus)).Error
}

func (r *DefaultReferralBonusRepository) GetBonusesByReferrerID(ctx context.Context, referrerID string) ([]*domain.ReferralBonus, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var bonusModels []models.ReferralBonusModel
	if err := db.Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&bonusModels).Error; err != nil {
		return nil, err
	}

	bonuses := make([]*domain.ReferralBonus, len(bonusModels))
	for i, bonusModel := range bonusModels {
		bonuses[i] = mappers.ToDomainBonus(&bonusModel)
	}
	return bonuses, nil
}
