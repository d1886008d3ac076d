package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DefaultTable holds the credentials when no table is configured
const DefaultTable = "shiftmate_credentials"

// SQLStorage persists values in a two column table. Statements use '?'
// placeholders and SQLite's ON CONFLICT upsert.
type SQLStorage struct {
	db    *sql.DB
	table string
}

// NewSQLStorage creates the table if needed and returns the storage
func NewSQLStorage(ctx context.Context, db *sql.DB, table string) (*SQLStorage, error) {
	if db == nil {
		return nil, errors.New("sql storage: db was nil")
	}
	if table == "" {
		table = DefaultTable
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (name VARCHAR(64) PRIMARY KEY, value TEXT NOT NULL)", table)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("sql storage: create table %v: %w", table, err)
	}
	return &SQLStorage{db: db, table: table}, nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM "+s.table+" WHERE name = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO "+s.table+" (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

func (s *SQLStorage) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM "+s.table+" WHERE name = ?", key)
	return err
}
