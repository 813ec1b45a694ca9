package repository

import (
	"context"
	"io"
	"time"
)

// ObjectStorage defines the interface for object storage operations.
// Implementations should be provided by the infrastructure layer (e.g., S3, MinIO).
// Implementations must be safe for concurrent use.
type ObjectStorage interface {
	// Put stores size bytes read from reader under key.
	// metadata is attached as user-defined object metadata and may be nil.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error

	// PresignGet creates a time-limited URL for downloading an object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Head returns the attributes and metadata of an object.
	// Returns ErrObjectNotFound if the object does not exist.
	Head(ctx context.Context, key string) (*ObjectInfo, error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List enumerates objects whose key starts with prefix, in the order returned by the
	// backend. Only the first page of results is returned.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// PublicURL returns the conventional public address of key.
	// It performs no I/O and does not grant access.
	PublicURL(key string) string

	// Ping verifies the bucket is reachable.
	Ping(ctx context.Context) error
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	// Metadata holds user-defined metadata with lower-cased keys.
	Metadata map[string]string
}
