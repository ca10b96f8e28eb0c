package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/tempero/internal/dbx"
)

const (
	upsertSQL = `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	deleteSQL = `DELETE FROM metadata WHERE key = ?`
)

// SQLiteRepository is bound either to a *sql.DB or to a transaction. The
// batch methods need the *sql.DB to open their own transaction.
type SQLiteRepository struct {
	db   dbx.DBTX
	conn *sql.DB
}

// NewSQLiteRepository binds the repository to db. When db is a *sql.DB the
// batch methods run in a transaction; otherwise they run on db directly,
// which is already transactional.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	r := &SQLiteRepository{db: db}
	if conn, ok := db.(*sql.DB); ok {
		r.conn = conn
	}
	return r
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertSQL, key, value); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) SetAll(ctx context.Context, values map[string][]byte) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return r.batch(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, upsertSQL, k, values[k]); err != nil {
				return fmt.Errorf("failed to set metadata[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteSQL, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context, keys ...string) error {
	return r.batch(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, deleteSQL, k); err != nil {
				return fmt.Errorf("failed to delete metadata[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) batch(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if r.conn == nil {
		return fn(ctx, r.db)
	}
	return dbx.WithTx(ctx, r.conn, nil, fn)
}
