// Package storage provides the persistence layer for the feedback board.
//
// State is a handful of named keys, each holding one serialized blob that is
// rewritten in full on every change. Backends only need to be a durable
// string-keyed blob store; all serialization happens in the callers.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a named-key blob store.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any underlying connections.
	Close() error
}
