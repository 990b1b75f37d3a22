package memory

import (
	"context"
	"encoding/json"
	"sync"
)

// Store is an in-memory implementation of kv.Store, useful for tests and
// for runs that do not need persistence. Values are kept JSON-encoded so
// behavior matches the persistent backends exactly.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewStore() *Store {
	return &Store{values: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string, out any) bool {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *Store) Set(_ context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
	return true
}

func (s *Store) Remove(_ context.Context, key string) bool {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return true
}
