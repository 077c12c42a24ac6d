package mappers

import (
	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
)

func ToGORMSubmission(submission *domain.TaskSubmission) *models.TaskSubmissionModel {
	return &models.TaskSubmissionModel{
		ID:            submission.ID,
		UserID:        submission.UserID,
		ProductID:     submission.ProductID,
		ProfitEarned:  submission.ProfitEarned,
		AmountDebited: submission.AmountDebited,
		CreatedAt:     submission.CreatedAt,
	}
}

func ToDomainSubmission(model *models.TaskSubmissionModel) *domain.TaskSubmission {
	submission := &domain.TaskSubmission{
		ID:            model.ID,
		UserID:        model.UserID,
		ProductID:     model.ProductID,
		ProfitEarned:  model.ProfitEarned,
		AmountDebited: model.AmountDebited,
		CreatedAt:     model.CreatedAt,
	}
	if model.Product.ID != "" {
		submission.Product = ToDomainProduct(&model.Product)
	}
	return submission
}

func ToGORMBonus(bonus *domain.ReferralBonus) *models.ReferralBonusModel {
	return &models.ReferralBonusModel{
		ID:               bonus.ID,
		ReferrerID:       bonus.ReferrerID,
		ReferredUserID:   bonus.ReferredUserID,
		TaskSubmissionID: bonus.TaskSubmissionID,
		BonusAmount:      bonus.BonusAmount,
		CreatedAt:        bonus.CreatedAt,
	}
}

func ToDomainBonus(model *models.ReferralBonusModel) *domain.ReferralBonus {
	return &domain.ReferralBonus{
		ID:               model.ID,
		ReferrerID:       model.ReferrerID,
		ReferredUserID:   model.ReferredUserID,
		TaskSubmissionID: model.TaskSubmissionID,
		BonusAmount:      model.BonusAmount,
		CreatedAt:        model.CreatedAt,
	}
}
