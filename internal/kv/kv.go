// Package kv abstracts the flat key-value medium the store persists into.
package kv

import "context"

// Store is a minimal key-value contract: string keys, opaque byte values.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
