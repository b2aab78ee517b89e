package store

import (
	"encoding/json"
	"sort"
	"sync"
)

// MemStore is an in-memory backend for tests. Values round-trip through
// JSON so marshalling bugs surface the same way they would on disk.
type MemStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string][]byte{}}
}

func (s *MemStore) Load(key string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.m[key]
	if !ok {
		return ErrNoRecord
	}
	return json.Unmarshal(b, v)
}

func (s *MemStore) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = b
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *MemStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemStore) Close() error { return nil }
