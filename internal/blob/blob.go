// Package blob abstracts binary asset storage for certification documents.
// The profile record only ever holds the opaque ref; resolving a ref to a
// retrievable URL is this package's job.
package blob

import "context"

// Store persists opaque binary blobs.
type Store interface {
	// Put stores the bytes and returns an opaque ref.
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	// Get retrieves the bytes for a ref.
	Get(ctx context.Context, ref string) ([]byte, string, error)
	// URL resolves a ref into a retrievable URL for public projections.
	URL(ref string) string
}
