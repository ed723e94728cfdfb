package core

import (
	"context"

	"github.com/pkg/errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is the durable client-side storage the stores are persisted to.
// Values are opaque serialized bytes.
type KVStore interface {
	// Get returns ErrKeyNotFound when nothing was stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
