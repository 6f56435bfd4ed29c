package session

import (
	"encoding/json"
	"fmt"

	"github.com/witify/go-cart/internal/types"
)

// MemoryStore is an in-process session store. Records are kept as JSON so
// reads return independent copies with the same shape a real session backend
// would produce.
type MemoryStore struct {
	records map[string][]byte
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Get returns the record stored under key.
func (s *MemoryStore) Get(key string) (*types.CartRecord, bool) {
	data, ok := s.records[key]
	if !ok {
		return nil, false
	}
	var rec types.CartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// Put stores the record under key.
func (s *MemoryStore) Put(key string, record *types.CartRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}
	s.records[key] = data
	return nil
}

// Has reports whether a record exists under key.
func (s *MemoryStore) Has(key string) bool {
	_, ok := s.records[key]
	return ok
}
