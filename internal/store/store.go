// Package store holds the persistent key-value layer every repository sits on.
// Values are opaque strings; repositories decide how they are encoded.
package store

import (
	"context"
	"errors"
)

// ErrContention is returned when an optimistic Update kept losing races.
var ErrContention = errors.New("store: too much contention on key")

// UpdateFunc receives the current value (ok is false when the key is absent)
// and returns the value to write. Returning an error aborts the update and
// leaves the key untouched. It may run more than once, so it must not have
// side effects outside its return values.
type UpdateFunc func(current string, ok bool) (string, error)

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Update atomically replaces the value at key with fn's result.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
