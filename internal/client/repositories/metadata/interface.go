// Package metadata persists small key/value records in the local client
// database. The session store keeps its token and user here.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetAll writes every pair or none.
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	// DeleteAll removes every key or none. Absent keys are not an error.
	DeleteAll(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
