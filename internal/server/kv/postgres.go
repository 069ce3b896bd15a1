package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/freelancehub/internal/dbx"
	"github.com/dmitrijs2005/freelancehub/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore keeps records in a kv_store(key text, value jsonb) table.
type PostgresStore struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewPostgresStore connects with the pgx driver, verifies the connection and
// applies pending migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	s := NewPostgresStoreFromDB(db)
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return s, nil
}

// NewPostgresStoreFromDB wraps an already opened handle. Migrations are not run.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// RunMigrations applies the embedded goose migrations.
func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, s.db, ".")
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return getRow(ctx, s.db, key, false)
}

func getRow(ctx context.Context, db dbx.DBTX, key string, forUpdate bool) ([]byte, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var value []byte
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", err)
	}

	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(ctx, s.db, key, value)
}

func upsert(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByPrefix(ctx context.Context, prefix string) ([]Record, error) {
	query := `
		SELECT key, value FROM kv_store
		WHERE key LIKE $1 ESCAPE '\'
		ORDER BY key COLLATE "C"`

	rows, err := s.db.QueryContext(ctx, query, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	recs := make([]Record, 0)
	for rows.Next() {
		var r Record
		var value []byte
		if err := rows.Scan(&r.Key, &value); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		r.Value = value
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recs, nil
}

// errInsertRace signals that a concurrent writer created the key between our
// SELECT ... FOR UPDATE (which cannot lock a missing row) and our INSERT.
var errInsertRace = errors.New("kv: concurrent insert")

func retryUpdate(err error) bool {
	return errors.Is(err, errInsertRace) || dbx.IsTransient(err)
}

// Update locks the row with SELECT ... FOR UPDATE inside a transaction. For a
// missing key there is no row to lock, so the insert uses ON CONFLICT DO
// NOTHING and the whole step is retried if somebody else won. ErrDelete
// removes the locked row in the same transaction.
func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := dbx.WithTxRetry(ctx, s.db, nil, maxUpdateRetries, retryUpdate, func(ctx context.Context, tx dbx.DBTX) error {
		old, found, err := getRow(ctx, tx, key, true)
		if err != nil {
			return err
		}

		next, err := fn(old, found)
		if errors.Is(err, ErrDelete) {
			if !found {
				return nil
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			return nil
		}
		if err != nil {
			return err
		}

		if found {
			return upsert(ctx, tx, key, next)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO kv_store (key, value) VALUES ($1, $2::jsonb) ON CONFLICT (key) DO NOTHING`,
			key, string(next))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected error: %w", err)
		}
		if n == 0 {
			return errInsertRace
		}
		return nil
	})

	switch {
	case errors.Is(err, ErrSkip):
		return nil
	case errors.Is(err, dbx.ErrRetriesExhausted):
		return ErrTooManyRetries
	}
	return err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
