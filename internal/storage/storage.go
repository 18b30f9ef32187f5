package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry is used when the caller passes a non-positive
// expiry duration.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage abstracts the object store holding client progress photos.
// Binaries move between the mobile client and the bucket directly through
// presigned URLs; the backend only brokers the URLs and tracks metadata.
type FileStorage interface {
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}
