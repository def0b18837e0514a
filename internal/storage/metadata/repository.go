// Package metadata implements a small persistent key-value store used for
// client-local state: the session credential, the serialized user snapshot,
// and the guest-mode flag.
package metadata

import "context"

// Repository is a byte-valued key-value store.
//
// Get returns (nil, nil) for a missing key so callers can distinguish
// "absent" from an I/O failure without a sentinel error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	List(ctx context.Context) (map[string][]byte, error)
}
