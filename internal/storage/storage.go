package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry is used when the caller does not specify one.
const DefaultPresignedURLExpiry = 15 * time.Minute

// ObjectStorage abstracts the S3-compatible store backup archives are
// written to.
type ObjectStorage interface {
	// Put writes an object server-side.
	Put(ctx context.Context, objectKey string, contentType string, data []byte) error
	// GeneratePresignedDownloadURL creates a temporary URL for fetching
	// an object without credentials.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	// DeleteObject removes an object.
	DeleteObject(ctx context.Context, objectKey string) error
}
