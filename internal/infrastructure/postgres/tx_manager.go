package postgres

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager implements domain.TxManager on top of a gorm transaction. The
// open *gorm.DB is carried in the context so every repository call made
// inside the callback joins the same transaction.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// DBFromContext returns the transaction bound to ctx, or fallback when the
// call is not running inside RunInTx.
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
