package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier runs statements against either a *sql.DB or a *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Transactor runs fn inside one transaction. fn must issue every statement
// through q; returning an error discards the batch.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
}

// TxFunc adapts a plain function to Transactor.
type TxFunc func(ctx context.Context, fn func(ctx context.Context, q Querier) error) error

func (f TxFunc) InTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	return f(ctx, fn)
}

// Batch groups key-value writes into SQLite transactions.
type Batch struct {
	db *sql.DB
}

// NewBatch returns a Transactor over database.
func NewBatch(database *sql.DB) *Batch {
	return &Batch{db: database}
}

func (b *Batch) InTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) (err error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	finished = true
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
