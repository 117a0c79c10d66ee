// Package docstore defines the persistence boundary for the expense
// collection: a single serialized document stored under a fixed key.
// Backends only move bytes; (de)serialization and the seed fallback
// belong to the service layer.
package docstore

import (
	"context"
	"errors"
)

// Key is the fixed document key. It matches the storage key used by the
// original browser version so an exported document stays recognizable.
const Key = "apto_expenses_v1"

// ErrNotFound is returned by Read when no document has been written yet.
var ErrNotFound = errors.New("document not found")

// Documents is the outbound port for document persistence.
type Documents interface {
	// Read returns the stored document, or ErrNotFound on first run.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored document.
	Write(ctx context.Context, doc []byte) error

	Close() error
}
