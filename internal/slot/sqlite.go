package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createSlotsTable = `CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLite stores the value as a row in a slots table keyed by name.
type SQLite struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path, key string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSlotsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SQLite{db: db, key: key}, nil
}

// Load reads the row for the key. It returns nil data if there is no row.
func (s *SQLite) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", s.key, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Save upserts the row for the key.
func (s *SQLite) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.key, data)
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", s.key, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
