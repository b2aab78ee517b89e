package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore keeps one pretty-printed JSON file per document under a
// data directory. It is the default backend.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dataDir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, Prefix+key+".json")
}

func (s *FileStore) Load(key string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoRecord
		}
		return err
	}
	return json.Unmarshal(b, v)
}

func (s *FileStore) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), b, 0o644)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, Prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(name, Prefix), ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) Close() error { return nil }
