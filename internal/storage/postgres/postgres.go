// Package postgres implements the durable cart store on PostgreSQL with
// connection pooling. It mirrors the sqlite backend's schema and semantics so
// deployments can switch drivers without a data-model change.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/witify/go-cart/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS carts (
    identity_id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_carts_updated_at ON carts(updated_at);
`

// PostgresStore implements storage.DurableStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// New creates a PostgreSQL-backed cart store from a connection string.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// FindByIdentity returns the cart record stored for an identity, or nil when
// no row exists.
func (s *PostgresStore) FindByIdentity(ctx context.Context, identityID string) (*types.CartRecord, error) {
	var content string
	err := s.pool.QueryRow(ctx,
		"SELECT content FROM carts WHERE identity_id = $1", identityID,
	).Scan(&content)
	if err == pgx.ErrNoRows {
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

// Insert stores a new cart row for the identity.
func (s *PostgresStore) Insert(ctx context.Context, identityID string, record *types.CartRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cart content: %w", err)
	}

	t, err := record.Time()
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		"INSERT INTO carts (identity_id, content, updated_at, created_at) VALUES ($1, $2, $3, $4)",
		identityID, string(content), t, t,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cart for %s: %w", identityID, err)
	}
	return nil
}

// UpdateByIdentity replaces the content and updated_at of an existing row.
func (s *PostgresStore) UpdateByIdentity(ctx context.Context, identityID string, record *types.CartRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cart content: %w", err)
	}

	t, err := record.Time()
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE carts SET content = $1, updated_at = $2 WHERE identity_id = $3",
		string(content), t, identityID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart for %s: %w", identityID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no cart row for identity %s", identityID)
	}
	return nil
}

// CountRows reports the number of stored cart rows.
func (s *PostgresStore) CountRows(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM carts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cart rows: %w", err)
	}
	return count, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
