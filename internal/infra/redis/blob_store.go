package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-trainer/internal/infra/blob"
)

// BlobStore is a Redis-backed blob.Store. History blobs are kept without
// expiry; ttl is exposed for callers that want transient storage.
type BlobStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBlobStore(client *redis.Client, ttl time.Duration) *BlobStore {
	return &BlobStore{client: client, ttl: ttl}
}

func (s *BlobStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", blob.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *BlobStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *BlobStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *BlobStore) key(key string) string {
	return "trainer:blob:" + key
}
