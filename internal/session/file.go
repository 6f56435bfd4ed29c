package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/witify/go-cart/internal/types"
)

// FileStore persists session records as JSON files under a directory, one
// file per key. It gives a CLI process the session semantics a web framework
// would provide: state that survives between invocations but is not tied to
// an identity.
type FileStore struct {
	dir string
	id  string
}

// NewFile opens (creating if needed) a file-backed session store rooted at
// dir. Each store directory carries a generated session id so distinct
// directories behave as distinct sessions.
func NewFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	idPath := filepath.Join(dir, "session-id")
	data, err := os.ReadFile(idPath)
	if os.IsNotExist(err) {
		id := uuid.New().String()
		if err := os.WriteFile(idPath, []byte(id+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("failed to write session id: %w", err)
		}
		return &FileStore{dir: dir, id: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session id: %w", err)
	}
	return &FileStore{dir: dir, id: strings.TrimSpace(string(data))}, nil
}

// ID returns the generated identifier of this session.
func (s *FileStore) ID() string {
	return s.id
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the record stored under key.
func (s *FileStore) Get(key string) (*types.CartRecord, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	var rec types.CartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// Put stores the record under key.
func (s *FileStore) Put(key string, record *types.CartRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

// Has reports whether a record exists under key.
func (s *FileStore) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Clear removes the record stored under key, if any.
func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}
