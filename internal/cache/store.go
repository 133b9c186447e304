// Package cache holds the permission policy for the active role in a
// key-value store. The store is the source of truth for the read path: a
// missing entry is a hard error, never a fall-back to defaults.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/procureflow/pr-service/internal/models"
	"github.com/procureflow/pr-service/pkg/database"
)

// Store is a generic key-value store with connect/get/set semantics.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store over a single kv table.
type SQLiteStore struct {
	db *database.DB
}

// NewSQLiteStore creates the kv table if needed and returns the store.
func NewSQLiteStore(db *database.DB) (*SQLiteStore, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get returns the value stored under key. An absent key reports
// models.ErrCacheMiss.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: key %q", models.ErrCacheMiss, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value wholesale.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Ping verifies the store connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
