package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string
	Name           string
	Image          string
	Price          decimal.Decimal
	NegativeAmount decimal.Decimal
	EndDate        time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Available reports whether the product can still be claimed at the given
// instant.
func (p *Product) Available(now time.Time) bool {
	return p.IsActive && p.EndDate.After(now)
}

type ProductUpdate struct {
	Name           *string
	Image          *string
	Price          *decimal.Decimal
	NegativeAmount *decimal.Decimal
	EndDate        *time.Time
	IsActive       *bool
}

// UserTaskOverride replaces the product's default debit for a single
// (user, product) pair. At most one row per pair, upsert semantics.
type UserTaskOverride struct {
	ID             string
	UserID         string
	ProductID      string
	NegativeAmount decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProductByID(ctx context.Context, productID string) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, patch *ProductUpdate) error
	// GetActiveProducts returns active products with an end date after now,
	// newest first.
	GetActiveProducts(ctx context.Context, now time.Time) ([]*Product, error)
	// GetActiveProductsExcluding additionally filters out the given product IDs.
	GetActiveProductsExcluding(ctx context.Context, now time.Time, excludeIDs []string) ([]*Product, error)
}

type UserTaskOverrideRepository interface {
	// FindOverride returns nil without error when no override exists for
	// the pair.
	FindOverride(ctx context.Context, userID, productID string) (*UserTaskOverride, error)
	ListOverridesForUser(ctx context.Context, userID string) ([]*UserTaskOverride, error)
	UpsertOverride(ctx context.Context, override *UserTaskOverride) error
}
