package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGKV implements KV on a Postgres table.
type PGKV struct {
	DB *sql.DB
}

// Set upserts the value under the key.
func (r *PGKV) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO evaluation_records (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("kv set key=%s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under the key.
func (r *PGKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM evaluation_records WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get key=%s: %w", key, err)
	}
	return value, nil
}

var _ KV = (*PGKV)(nil)
