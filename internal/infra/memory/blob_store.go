package memory

import (
	"context"
	"sync"

	"quiz-trainer/internal/infra/blob"
)

// BlobStore is an in-memory blob.Store, used in tests and for throwaway runs.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string]string)}
}

func (s *BlobStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.blobs[key]
	if !ok {
		return "", blob.ErrNotFound
	}
	return value, nil
}

func (s *BlobStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = value
	return nil
}

func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
