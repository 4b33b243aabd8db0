package blobstore

import (
	"context"
	"sync"
)

// MemoryStore is the fallback when Redis is disabled, and the store used in
// tests. Contents live for the process lifetime only.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

func (s *MemoryStore) Write(_ context.Context, key, blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob
	return nil
}

func (s *MemoryStore) Read(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return "", ErrNotFound
	}
	return blob, nil
}
