// Package storage defines the durable cart store: per-identity persistence
// that survives across sessions and devices. Backends live in subpackages
// (sqlite, postgres); a memory backend here serves tests and ephemeral use.
package storage

import (
	"context"

	"github.com/witify/go-cart/internal/types"
)

// DurableStore is the identity-scoped cart store, one record per identity.
// FindByIdentity returns (nil, nil) when no record exists; upsert is the
// caller's find-then-insert-or-update sequence. Concurrent writers for the
// same identity are last-write-wins; callers needing stronger guarantees must
// add locking or versioning externally.
type DurableStore interface {
	FindByIdentity(ctx context.Context, identityID string) (*types.CartRecord, error)
	Insert(ctx context.Context, identityID string, record *types.CartRecord) error
	UpdateByIdentity(ctx context.Context, identityID string, record *types.CartRecord) error

	// CountRows reports the number of stored cart rows, for tests and ops
	// visibility.
	CountRows(ctx context.Context) (int, error)

	Close() error
}
