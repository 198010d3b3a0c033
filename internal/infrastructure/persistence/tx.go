package persistence

import (
	"context"

	"github.com/boardhub/backend/internal/domain/tree"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTxRunner implements tree.TxRunner on a GORM connection. The open
// transaction travels in the context, so repository calls made inside the
// callback automatically join it, and nested InTx calls reuse the outer
// transaction instead of opening a second one.
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner creates a transaction runner
func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// InTx runs fn inside a database transaction. An error from fn rolls the
// whole transaction back.
func (r *GormTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// txFrom extracts the transaction carried by ctx, if any
func txFrom(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// dbFrom returns the context's transaction when one is open, the fallback
// connection otherwise
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

var _ tree.TxRunner = (*GormTxRunner)(nil)
