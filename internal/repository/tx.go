package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

type txKey struct{}

// TxRunner executes a function inside a single database transaction.
// The transaction is carried through the context so that every
// repository call made within fn joins it; nested WithTx calls reuse
// the enclosing transaction.  fn returning an error rolls everything
// back, which is what guarantees that a failed admission leaves the
// events table and the reservation ledger untouched.
type TxRunner struct{ db *sql.DB }

// NewTxRunner returns a TxRunner bound to the given pool.
func NewTxRunner(db *sql.DB) *TxRunner { return &TxRunner{db: db} }

// WithTx begins a transaction, runs fn with it attached to the
// context, and commits unless fn returns an error.
func (r *TxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// querier is the subset of *sql.DB / *sql.Tx the repositories need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn selects the statement executor for ctx: the enclosing
// transaction when one is attached, otherwise the bare pool.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry
// violation (error 1062), e.g. a second hall booking for a date that
// already has one.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
