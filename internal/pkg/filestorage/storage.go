package filestorage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectExists is returned when a create would overwrite an existing object
var ErrObjectExists = errors.New("object already exists")

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Create stores r under key and fails with ErrObjectExists instead of overwriting
	Create(ctx context.Context, key string, r io.Reader, size int64) error

	// Delete removes the object; deleting a missing object is not an error
	Delete(ctx context.Context, key string) error

	// List returns every stored object
	List(ctx context.Context) ([]ObjectInfo, error)

	// Location returns the reference persisted alongside records for key
	Location(key string) string

	// KeyFromLocation reverses Location
	KeyFromLocation(location string) string
}
