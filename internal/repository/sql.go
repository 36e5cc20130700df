package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_store (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	mysqlSchema = `CREATE TABLE IF NOT EXISTS kv_store (
		k VARCHAR(191) NOT NULL PRIMARY KEY,
		v MEDIUMTEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	sqliteUpsert = `INSERT INTO kv_store (k, v) VALUES (?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP`
	mysqlUpsert = `INSERT INTO kv_store (k, v) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE v = VALUES(v)`
)

// SQLStore is a Store backed by a kv_store table.
type SQLStore struct {
	db     *sql.DB
	upsert string
}

// NewSQLStore creates the kv_store table if needed and returns a Store over it.
func NewSQLStore(ctx context.Context, db *sql.DB, driver string) (*SQLStore, error) {
	var schema, upsert string
	switch driver {
	case DriverSQLite:
		schema, upsert = sqliteSchema, sqliteUpsert
	case DriverMySQL:
		schema, upsert = mysqlSchema, mysqlUpsert
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("initializing kv_store schema: %w", err)
	}

	return &SQLStore{db: db, upsert: upsert}, nil
}

// Get returns the value stored under key.
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv_store WHERE k = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Set inserts or replaces the value stored under key.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.upsert, key, value)
	return err
}

// Remove deletes key. Removing a missing key is not an error.
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE k = ?`, key)
	return err
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
