package store

import (
	"context"
	"sync"
)

// MemStore is an in-process KeyValueStore for local development and tests.
// Writes copy the value so callers cannot alias the stored bytes.
type MemStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string][]byte)}
}

func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemStore) Put(_ context.Context, key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	s.mu.Lock()
	s.items[key] = b
	s.mu.Unlock()
	return nil
}

// Len reports how many keys have been written.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
