// Package docstore is the extension-scoped document storage collaborator:
// one JSON document per bug bash in a single named collection, versioned
// with a monotonic etag the store assigns on every successful write.
//
// Two implementations exist: Redis (shared instances) and Bolt (a local
// file). Both enforce optimistic concurrency: a write whose etag does not
// match the stored document fails with ErrConflict instead of silently
// overwriting.
package docstore

import (
	"context"
	"errors"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrConflict is returned when a write carries a stale etag.
var ErrConflict = errors.New("document version conflict")

// Store is the document storage contract the actions creator consumes.
// Implementations return ErrNotFound/ErrConflict for the recoverable
// cases; any other error is a transport failure.
type Store interface {
	// GetDocuments returns every document in the collection. An empty
	// collection yields an empty slice, not an error.
	GetDocuments(ctx context.Context, collection string) ([]*bugbash.BugBash, error)

	// GetDocument returns the document with the given id.
	GetDocument(ctx context.Context, collection, id string) (*bugbash.BugBash, error)

	// SetDocument creates or updates the document, enforcing the etag
	// check, and returns the stored copy with its new etag.
	SetDocument(ctx context.Context, collection string, doc *bugbash.BugBash) (*bugbash.BugBash, error)

	// DeleteDocument removes the document with the given id.
	DeleteDocument(ctx context.Context, collection, id string) error

	// Close releases the underlying connection or file handle.
	Close() error
}

// IsNotFound reports whether err is the not-found case.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is the stale-etag case.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
