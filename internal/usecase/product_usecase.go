package usecase

import (
	"context"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name           string
	Image          string
	Price          decimal.Decimal
	NegativeAmount decimal.Decimal
	EndDate        time.Time
}

type ProductUsecase interface {
	CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, patch *domain.ProductUpdate) (*domain.Product, error)
	GetActiveProducts(ctx context.Context) ([]*domain.Product, error)
	GetActiveProductsForUser(ctx context.Context, userID string) ([]*domain.Product, error)
	SetUserTaskOverride(ctx context.Context, userID, productID string, negativeAmount decimal.Decimal) error
}

type DefaultProductUsecase struct {
	ProductRepo    domain.ProductRepository
	SubmissionRepo domain.TaskSubmissionRepository
	OverrideRepo   domain.UserTaskOverrideRepository
}

func NewDefaultProductUsecase(
	productRepo domain.ProductRepository,
	submissionRepo domain.TaskSubmissionRepository,
	overrideRepo domain.UserTaskOverrideRepository) *DefaultProductUsecase {

	return &DefaultProductUsecase{
		ProductRepo:    productRepo,
		SubmissionRepo: submissionRepo,
		OverrideRepo:   overrideRepo,
	}
}

func (uc *DefaultProductUsecase) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Image:          input.Image,
		Price:          input.Price,
		NegativeAmount: input.NegativeAmount,
		EndDate:        input.EndDate,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	if err := uc.ProductRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *DefaultProductUsecase) UpdateProduct(ctx context.Context, productID string, patch *domain.ProductUpdate) (*domain.Product, error) {
	if err := uc.ProductRepo.UpdateProduct(ctx, productID, patch); err != nil {
		return nil, err
	}
	return uc.ProductRepo.GetProductByID(ctx, productID)
}

func (uc *DefaultProductUsecase) GetActiveProducts(ctx context.Context) ([]*domain.Product, error) {
	return uc.ProductRepo.GetActiveProducts(ctx, time.Now())
}

// GetActiveProductsForUser hides products the user already submitted and
// substitutes any per-user debit overrides into the returned list.
func (uc *DefaultProductUsecase) GetActiveProductsForUser(ctx context.Context, userID string) ([]*domain.Product, error) {
	submittedIDs, err := uc.SubmissionRepo.ListSubmittedProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := uc.ProductRepo.GetActiveProductsExcluding(ctx, time.Now(), submittedIDs)
	if err != nil {
		return nil, err
	}

	overrides, err := uc.OverrideRepo.ListOverridesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	overrideByProduct := make(map[string]decimal.Decimal, len(overrides))
	for _, override := range overrides {
		overrideByProduct[override.ProductID] = override.NegativeAmount
	}

	for _, product := range products {
		if amount, ok := overrideByProduct[product.ID]; ok {
			product.NegativeAmount = amount
		}
	}
	return products, nil
}

func (uc *DefaultProductUsecase) SetUserTaskOverride(ctx context.Context, userID, productID string, negativeAmount decimal.Decimal) error {
	if _, err := uc.ProductRepo.GetProductByID(ctx, productID); err != nil {
		return err
	}

	return uc.OverrideRepo.UpsertOverride(ctx, &domain.UserTaskOverride{
		ID:             uuid.NewString(),
		UserID:         userID,
		ProductID:      productID,
		NegativeAmount: negativeAmount,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	})
}
