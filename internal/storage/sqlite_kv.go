package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/hubkit/internal/db"
)

// SQLiteKV stores entries in the kv_entries table.
type SQLiteKV struct {
	db *sql.DB
	tx db.Transactor
}

// NewSQLiteKV creates a SQLiteKV over an already migrated database.
func NewSQLiteKV(database *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: database, tx: db.NewBatch(database)}
}

// OpenSQLiteKV opens (and migrates) the database at path.
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteKV(database), nil
}

// WithTransactor replaces the transaction runner used by SetMulti.
func (s *SQLiteKV) WithTransactor(tx db.Transactor) *SQLiteKV {
	s.tx = tx
	return s
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	return upsertEntry(ctx, s.db, key, value)
}

func (s *SQLiteKV) SetMulti(ctx context.Context, entries map[string][]byte) error {
	return s.tx.InTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, k := range sortedKeys(entries) {
			if err := upsertEntry(ctx, q, k, entries[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

func upsertEntry(ctx context.Context, q db.Querier, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query := `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at,
			revision = kv_entries.revision + 1`
	if _, err := q.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
