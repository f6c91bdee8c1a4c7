package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ticketapp/internal/common"
	"github.com/dmitrijs2005/ticketapp/internal/dbx"
)

// SQLiteStore keeps items in the items table created by the embedded
// migrations. A quota of 0 disables the size limit.
type SQLiteStore struct {
	db    *sql.DB
	quota int64
}

func NewSQLiteStore(db *sql.DB, quota int64) *SQLiteStore {
	return &SQLiteStore{db: db, quota: quota}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM items WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item[%s]: %w", key, err)
	}
	return value, nil
}

// Set upserts the item. The quota check and the write share one transaction,
// so a rejected write leaves the previous value in place.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if s.quota > 0 {
			var used int64
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(value)), 0) FROM items WHERE key <> ?`,
				key).Scan(&used)
			if err != nil {
				return err
			}
			if need := used + int64(len(key)+len(value)); need > s.quota {
				return fmt.Errorf("%w: %d of %d bytes", common.ErrQuotaExceeded, need, s.quota)
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set item[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete item[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items`)
	if err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM items`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}

	return result, nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
