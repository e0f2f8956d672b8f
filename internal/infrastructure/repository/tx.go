package repository

import (
	"context"

	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by gorm transactions
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &gormTxManager{db: db}
}

// WithinTx runs fn inside a database transaction and stores the transaction
// handle in the context, where the repositories pick it up. A nested call joins
// the ambient transaction instead of opening a new one, so composed operations
// (e.g. document emission allocating a sequence number) commit or roll back as
// one unit.
func (m *gormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// dbFromContext returns the ambient transaction if one is present, falling back
// to the base connection. Every repository method goes through this so it works
// both standalone and inside a TxManager unit.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
