// Package blobstore is the opaque key-value persistence collaborator for
// submitted configurations. Blobs are already-serialized strings; nothing in
// here inspects them.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Store writes and reads opaque blobs. Write overwrites any prior value
// under the same key and must not return before the value is durable enough
// for the backend, so callers can report save failures.
type Store interface {
	Write(ctx context.Context, key, blob string) error
	Read(ctx context.Context, key string) (string, error)
}
