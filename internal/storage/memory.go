package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process CacheStore used by tests and as a default
// when no cache path is configured.
type MemoryStore struct {
	buckets map[string]map[string]string
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory cache store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]map[string]string)}
}

// Get returns the cached value for (bucket, key), if present.
func (s *MemoryStore) Get(_ context.Context, bucket, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.buckets[bucket][key]
	return value, ok, nil
}

// Put stores value under (bucket, key).
func (s *MemoryStore) Put(_ context.Context, bucket, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buckets[bucket] == nil {
		s.buckets[bucket] = make(map[string]string)
	}
	s.buckets[bucket][key] = value
	return nil
}

// Clear removes every entry in bucket.
func (s *MemoryStore) Clear(_ context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets, bucket)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
