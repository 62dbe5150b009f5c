// Package storage provides the filename-keyed byte store behind the HTTP
// handlers. Every backend implements the same Store interface so handlers
// stay backend-agnostic and tests can substitute the in-memory one.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Read when no entry exists under the
	// given filename.
	ErrNotFound = errors.New("file not found")

	// ErrCreateFailed marks write errors that happened before any bytes
	// were accepted (the destination could not be created). Handlers map
	// these to 400; every other write error maps to 500.
	ErrCreateFailed = errors.New("create failed")
)

// Store is the capability set handlers are constructed with. Filenames are
// opaque storage keys supplied by the client and are used verbatim; no
// sanitization or path-separator rejection happens at this layer.
type Store interface {
	// Write creates or overwrites the entry named filename. The content
	// is flushed before Write returns nil. Overwrite is last-writer-wins
	// and not atomic; a concurrent reader of the same name may observe a
	// partial file.
	Write(ctx context.Context, filename string, data []byte) error

	// Read returns the full content of the named entry, or ErrNotFound.
	Read(ctx context.Context, filename string) ([]byte, error)

	// List returns every entry name currently present, order unspecified.
	List(ctx context.Context) ([]string, error)
}
