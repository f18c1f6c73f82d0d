// Package file implements the blob store on the local filesystem, one file
// per key. This is the default store for a single-user installation.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"quiz-trainer/internal/infra/blob"
)

type BlobStore struct {
	base string
}

// NewBlobStore creates base if needed and stores each key as
// <base>/<key>.json.
func NewBlobStore(base string) (*BlobStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &BlobStore{base: base}, nil
}

func (s *BlobStore) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", blob.ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

func (s *BlobStore) Set(_ context.Context, key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0o644)
}

func (s *BlobStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *BlobStore) path(key string) string {
	return filepath.Join(s.base, filepath.Clean(key)+".json")
}
