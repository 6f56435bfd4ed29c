package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/witify/go-cart/internal/types"
)

type memoryRow struct {
	content   []byte
	updatedAt time.Time
	createdAt time.Time
}

// MemoryStore is an in-process DurableStore. It keeps the same row shape as
// the database backends (JSON content plus row timestamps) so reconciliation
// behaves identically against it.
type MemoryStore struct {
	rows map[string]memoryRow
}

// NewMemory creates an empty in-memory durable store.
func NewMemory() *MemoryStore {
	return &MemoryStore{rows: make(map[string]memoryRow)}
}

// FindByIdentity returns the cart record for an identity, or nil when absent.
func (s *MemoryStore) FindByIdentity(_ context.Context, identityID string) (*types.CartRecord, error) {
	row, ok := s.rows[identityID]
	if !ok {
		return nil, nil
	}
	var rec types.CartRecord
	if err := json.Unmarshal(row.content, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cart content for %s: %w", identityID, err)
	}
	return &rec, nil
}

// Insert stores a new row for the identity.
func (s *MemoryStore) Insert(_ context.Context, identityID string, record *types.CartRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cart content: %w", err)
	}
	t, err := record.Time()
	if err != nil {
		return err
	}
	s.rows[identityID] = memoryRow{content: content, updatedAt: t, createdAt: t}
	return nil
}

// UpdateByIdentity replaces the content of an existing row.
func (s *MemoryStore) UpdateByIdentity(_ context.Context, identityID string, record *types.CartRecord) error {
	row, ok := s.rows[identityID]
	if !ok {
		return fmt.Errorf("no cart row for identity %s", identityID)
	}
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cart content: %w", err)
	}
	t, err := record.Time()
	if err != nil {
		return err
	}
	row.content = content
	row.updatedAt = t
	s.rows[identityID] = row
	return nil
}

// CountRows reports the number of stored rows.
func (s *MemoryStore) CountRows(_ context.Context) (int, error) {
	return len(s.rows), nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
