package mappers

import (
	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
)

func ToGORMProduct(product *domain.Product) *models.ProductModel {
	return &models.ProductModel{
		ID:             product.ID,
		Name:           product.Name,
		Image:          product.Image,
		Price:          product.Price,
		NegativeAmount: product.NegativeAmount,
		EndDate:        product.EndDate,
		IsActive:       product.IsActive,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		ID:             model.ID,
		Name:           model.Name,
		Image:          model.Image,
		Price:          model.Price,
		NegativeAmount: model.NegativeAmount,
		EndDate:        model.EndDate,
		IsActive:       model.IsActive,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToGORMOverride(override *domain.UserTaskOverride) *models.UserTaskOverrideModel {
	return &models.UserTaskOverrideModel{
		ID:             override.ID,
		UserID:         override.UserID,
		ProductID:      override.ProductID,
		NegativeAmount: override.NegativeAmount,
		CreatedAt:      override.CreatedAt,
		UpdatedAt:      override.UpdatedAt,
	}
}

func ToDomainOverride(model *models.UserTaskOverrideModel) *domain.UserTaskOverride {
	return &domain.UserTaskOverride{
		ID:             model.ID,
		UserID:         model.UserID,
		ProductID:      model.ProductID,
		NegativeAmount: model.NegativeAmount,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
