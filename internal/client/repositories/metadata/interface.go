// Package metadata stores opaque values under fixed string keys in the
// local database. The card collection and the entitlement flag live here.
package metadata

import (
	"context"
)

// Repository is a key/value store for blobs. Get returns
// common.ErrorNotFound for a missing key; Set replaces the whole value in a
// single statement.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
