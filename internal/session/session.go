// Package session defines the session-scoped cart store: ephemeral storage
// tied to the calling context, holding the guest cart until an identity
// attaches.
package session

import "github.com/witify/go-cart/internal/types"

// Store is the session-scoped record store. One Store is scoped to one
// calling context; keys namespace multiple records within it.
type Store interface {
	// Get returns the record stored under key, or false when absent.
	Get(key string) (*types.CartRecord, bool)

	// Put stores the record under key, replacing any existing record.
	Put(key string, record *types.CartRecord) error

	// Has reports whether a record exists under key.
	Has(key string) bool
}
