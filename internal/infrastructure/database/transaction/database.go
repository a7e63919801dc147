package transaction

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type TransactionContextKey struct{}

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionContextKey{}, tx)
}

type Database struct {
	db *gorm.DB
}

// GetTx returns the transaction carried by ctx, or the root handle when there is none.
func (t *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return t.db.WithContext(ctx)
}

// GetPrimary is GetTx pinned to the primary, for reads that must observe a write made just before.
// Without a registered replica it behaves like GetTx.
func (t *Database) GetPrimary(ctx context.Context) *gorm.DB {
	return t.GetTx(ctx).Clauses(dbresolver.Write)
}

// WithTransaction runs fn in a transaction. Nested calls join the outer transaction.
func (t *Database) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db}
}
