// Package metadata is the client's persisted key-value area. The session
// store keeps the bearer token and the serialized user here.
package metadata

import "context"

// Repository reads and writes opaque values under string keys.
//
// Get returns nil (no error) for a missing key, so callers can treat
// "absent" and "empty" uniformly.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
