// Package store defines the key-value capability the cache is built on and
// the adapters that provide it. The surface is deliberately narrow: per-key
// get and put, no transactions, no listing, no delete, no cross-key ordering.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written. A miss
// is a normal outcome, distinct from the store being unreachable.
var ErrNotFound = errors.New("store: key not found")

// KeyValueStore is the capability consumed by the cache layer. Any Get error
// other than ErrNotFound means the store could not be reached.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
