// Package blob defines the string-keyed blob store the history layer
// persists into. Implementations live beside it: memory, file, redis.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("blob: key not found")

// Store is a synchronous string-keyed blob store. Values are whole blobs;
// there are no partial updates.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
