package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/svml/uriage-bot/internal/application/port"
)

// MemoryStore is an in-process port.BlobStore used by tests and local runs
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Get returns a copy of the object bytes, or port.ErrObjectNotFound
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, port.ErrObjectNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores a copy of the object bytes
func (s *MemoryStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = stored
	return nil
}

// Delete removes the object; deleting a missing key is a no-op
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}

// List returns the sorted keys under the given prefix
func (s *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored objects
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
