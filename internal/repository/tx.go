package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner runs a function with repositories bound to one database
// transaction. Snapshot-then-mutate sequences use it so a failed content
// write also rolls back the snapshot insert instead of leaving it orphaned.
type TxRunner interface {
	InTx(ctx context.Context, fn func(contents ContentRepository, history ContentHistoryRepository) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner creates a TxRunner over db
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(contents ContentRepository, history ContentHistoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewContentRepository(tx), NewContentHistoryRepository(tx))
	})
}
