package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations used by the
// materials library.
type Storage interface {
	// Save writes content at the given relative path, creating parent
	// directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path. Deleting a
	// missing file is not an error.
	Delete(ctx context.Context, path string) error
}
