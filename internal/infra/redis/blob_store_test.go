package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-trainer/internal/infra/blob"
)

func testClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestBlobStoreRoundTrip(t *testing.T) {
	client, _ := testClient(t)
	store := NewBlobStore(client, 0)
	ctx := context.Background()

	if _, err := store.Get(ctx, "quiz-history"); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "quiz-history", `{"attempts":[]}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "quiz-history")
	if err != nil || got != `{"attempts":[]}` {
		t.Fatalf("get: %q, %v", got, err)
	}

	if err := store.Delete(ctx, "quiz-history"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "quiz-history"); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestBlobStoreKeysArePrefixed(t *testing.T) {
	client, mr := testClient(t)
	store := NewBlobStore(client, 0)
	if err := store.Set(context.Background(), "quiz-history", "{}"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("trainer:blob:quiz-history") {
		t.Fatalf("expected prefixed key in redis, keys: %v", mr.Keys())
	}
}

func TestBlobStoreHonorsTTL(t *testing.T) {
	client, mr := testClient(t)
	store := NewBlobStore(client, time.Minute)
	ctx := context.Background()
	if err := store.Set(ctx, "transient", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, "transient"); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}
