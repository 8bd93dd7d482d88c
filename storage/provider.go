package storage

import (
	"context"
	"io"
)

// Provider stores uploaded artifacts. Implementations must be safe for
// concurrent use, as a single instance is shared by every in-flight upload.
type Provider interface {
	// Put stores size bytes read from body under key, recording contentType
	// as the object's Content-Type.
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error

	// URLFor returns the address under which the object stored at key can be
	// viewed.
	URLFor(key string) string
}
