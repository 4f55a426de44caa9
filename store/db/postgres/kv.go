package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hrygo/smartstudy/store"
)

func (d *DB) GetKV(ctx context.Context, find *store.FindKV) (*store.KV, error) {
	if find.Key == "" {
		return nil, fmt.Errorf("key is required")
	}

	kv := &store.KV{}
	err := d.db.QueryRowContext(ctx, `SELECT key, value, updated_ts FROM kv WHERE key = `+placeholder(1), find.Key).Scan(
		&kv.Key,
		&kv.Value,
		&kv.UpdatedTs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get kv: %w", err)
	}
	return kv, nil
}

func (d *DB) UpsertKV(ctx context.Context, upsert *store.UpsertKV) (*store.KV, error) {
	stmt := `INSERT INTO kv (key, value, updated_ts)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_ts = EXCLUDED.updated_ts
		RETURNING key, value, updated_ts`

	kv := &store.KV{}
	if err := d.db.QueryRowContext(ctx, stmt, upsert.Key, upsert.Value, time.Now().Unix()).Scan(
		&kv.Key,
		&kv.Value,
		&kv.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert kv: %w", err)
	}
	return kv, nil
}
