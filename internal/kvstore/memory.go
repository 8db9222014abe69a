package kvstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps values in process memory. Used for tests and for
// STORE_BACKEND=memory.
type MemoryStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	updated map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	s.updated[key] = time.Now().UTC()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.updated, key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]KeyInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]KeyInfo, 0, len(s.values))
	for k, v := range s.values {
		keys = append(keys, KeyInfo{Key: k, Size: len(v), UpdatedAt: s.updated[k]})
	}
	slices.SortFunc(keys, func(a, b KeyInfo) int { return strings.Compare(a.Key, b.Key) })
	return keys, nil
}
