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
	"gorm.io/gorm/clause"
)

type DefaultProductRepository struct {
	DB *gorm.DB
}

func NewDefaultProductRepository(db *gorm.DB) *DefaultProductRepository {
	return &DefaultProductRepository{DB: db}
}

func (r *DefaultProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	db := postgres.DBFromContext(ctx, r.DB)
	return db.Create(mappers.ToGORMProduct(product)).Error
}

func (r *DefaultProductRepository) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var productModel models.ProductModel
	if err := db.First(&productModel, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return mappers.ToDomainProduct(&productModel), nil
}

func (r *DefaultProductRepository) UpdateProduct(ctx context.Context, productID string, patch *domain.ProductUpdate) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.NegativeAmount != nil {
		updates["negative_amount"] = *patch.NegativeAmount
	}
	if patch.EndDate != nil {
		updates["end_date"] = *patch.EndDate
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if len(updates) == 0 {
		return nil
	}

	db := postgres.DBFromContext(ctx, r.DB)
	result := db.Model(&models.ProductModel{}).Where("id = ?", productID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *DefaultProductRepository) GetActiveProducts(ctx context.Context, now time.Time) ([]*domain.Product, error) {
	return r.GetActiveProductsExcluding(ctx, now, nil)
}

func (r *DefaultProductRepository) GetActiveProductsExcluding(ctx context.Context, now time.Time, excludeIDs []string) ([]*domain.Product, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	query := db.Where("is_active = ?", true).Where("end_date > ?", now)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN (?)", excludeIDs)
	}

	var productModels []models.ProductModel
	if err := query.Order("created_at DESC").Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(productModels))
	for i, productModel := range productModels {
		products[i] = mappers.ToDomainProduct(&productModel)
	}
	return products, nil
}

type DefaultUserTaskOverrideRepository struct {
	DB *gorm.DB
}

func NewDefaultUserTaskOverrideRepository(db *gorm.DB) *DefaultUserTaskOverrideRepository {
	return &DefaultUserTaskOverrideRepository{DB: db}
}

func (r *DefaultUserTaskOverrideRepository) FindOverride(ctx context.Context, userID, productID string) (*domain.UserTaskOverride, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var overrideModel models.UserTaskOverrideModel
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&overrideModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainOverride(&overrideModel), nil
}

func (r *DefaultUserTaskOverrideRepository) ListOverridesForUser(ctx context.Context, userID string) ([]*domain.UserTaskOverride, error) {
	db := postgres.DBFromContext(ctx, r.DB)
	var overrideModels []models.UserTaskOverrideModel
	if err := db.Where("user_id = ?", userID).Find(&overrideModels).Error; err != nil {
		return nil, err
	}

	overrides := make([]*domain.UserTaskOverride, len(overrideModels))
	for i, overrideModel := range overrideModels {
		overrides[i] = mappers.ToDomainOverride(&overrideModel)
	}
	return overrides, nil
}

func (r *DefaultUserTaskOverrideRepository) UpsertOverride(ctx context.Context, override *domain.UserTaskOverride) error {
	db := postgres.DBFromContext(ctx, r.DB)
	overrideModel := mappers.ToGORMOverride(override)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"negative_amount", "updated_at"}),
	}).Create(overrideModel).Error
}
