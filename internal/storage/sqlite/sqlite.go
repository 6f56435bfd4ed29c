// Package sqlite implements the durable cart store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/witify/go-cart/internal/types"
)

// SQLiteStore implements storage.DurableStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (creating if needed) a SQLite-backed cart store at path.
func New(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// WAL mode for better concurrency between request-scoped writers
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// FindByIdentity returns the cart record stored for an identity, or nil when
// no row exists.
func (s *SQLiteStore) FindByIdentity(ctx context.Context, identityID string) (*types.CartRecord, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		"SELECT content FROM carts WHERE identity_id = ?", identityID,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart for %s: %w", identityID, err)
	}

	var rec types.CartRecord
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cart content for %s: %w", identityID, err)
	}
	return &rec, nil
}

// Insert stores a new cart row for the identity. created_at and updated_at
// both take the record's timestamp.
func (s *SQLiteStore) Insert(ctx context.Context, identityID string, record *types.CartRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cart content: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO carts (identity_id, content, updated_at, created_at) VALUES (?, ?, ?, ?)",
		identityID, string(content), record.UpdatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cart for %s: %w", identityID, err)
	}
	return nil
}

// UpdateByIdentity replaces the content and updated_at of an existing row.
func (s *SQLiteStore) UpdateByIdentity(ctx context.Context, identityID string, record *types.CartRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cart content: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE carts SET content = ?, updated_at = ? WHERE identity_id = ?",
		string(content), record.UpdatedAt, identityID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart for %s: %w", identityID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no cart row for identity %s", identityID)
	}
	return nil
}

// CountRows reports the number of stored cart rows.
func (s *SQLiteStore) CountRows(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM carts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cart rows: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
