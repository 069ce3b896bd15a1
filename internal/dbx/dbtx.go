// Package dbx holds the small database/sql helpers the SQL-backed key-value
// store is built on.
package dbx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrRetriesExhausted is returned by WithTxRetry when every attempt failed
// with a retryable error.
var ErrRetriesExhausted = errors.New("dbx: transaction retries exhausted")

// WithTx begins a transaction, runs fn with it, and commits when fn returns
// nil. An error or panic from fn rolls back; panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// WithTxRetry runs fn in a fresh transaction up to attempts times, starting
// over whenever retry reports the failure as transient. Any other outcome,
// including success, is returned as is.
//
//	err := dbx.WithTxRetry(ctx, db, nil, 5, dbx.IsTransient, func(ctx context.Context, tx dbx.DBTX) error {
//	    row := tx.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = $1 FOR UPDATE", key)
//	    ...
//	})
func WithTxRetry(ctx context.Context, db *sql.DB, opts *sql.TxOptions, attempts int, retry func(error) bool, fn func(ctx context.Context, tx DBTX) error) error {
	for i := 0; i < attempts; i++ {
		err := WithTx(ctx, db, opts, fn)
		if err == nil || !retry(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return ErrRetriesExhausted
}

// IsTransient reports Postgres serialization failures and deadlocks, the two
// errors a transaction may simply be run again after.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
