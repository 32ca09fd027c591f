package port

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by BlobStore.Get when no object exists at
// the key. Reads and deletes of missing keys are not infrastructure errors.
var ErrObjectNotFound = errors.New("object not found")

// BlobStore defines JSON document operations against the external object
// store. Writes are unconditional; there is no compare-and-swap primitive.
type BlobStore interface {
	// Get returns the object bytes, or ErrObjectNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes the object, overwriting any existing content
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// List returns the keys under the given prefix
	List(ctx context.Context, prefix string) ([]string, error)
}
