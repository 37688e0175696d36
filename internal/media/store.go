// Package media holds the optional blob store for gallery images. Image
// bytes live outside the database; services only keep the public URL and
// the opaque storage id.
package media

import "context"

// Store is the capability injected at startup when a blob backend is
// configured. Handlers receive nil when it is not.
type Store interface {
	// Put stores the object and returns its public URL and opaque id.
	Put(ctx context.Context, key string, body []byte, contentType string) (url string, err error)

	// Delete removes the object by its opaque id. Missing objects are
	// not an error.
	Delete(ctx context.Context, key string) error
}
