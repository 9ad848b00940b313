package database

import (
	"context"

	"go-admin-panel/domain"

	"gorm.io/gorm"
)

type txCtxKey struct{}

// TxFromContext returns the transaction carried by the context, or nil.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// GormTxManager implements domain.TxManager on a gorm connection. The open
// transaction is threaded through the context so every SQLHandler call inside
// the function participates in it.
type GormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

var _ domain.TxManager = (*GormTxManager)(nil)

func (m *GormTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls reuse the outer transaction.
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey{}, tx))
	})
}
