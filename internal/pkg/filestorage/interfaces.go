package filestorage

import (
	"context"
	"errors"
	"mime/multipart"
)

// ErrInvalidKey is returned for object keys that escape the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// FileStorage defines the interface for file storage operations. Returned
// strings are public URLs.
type FileStorage interface {
	// SaveBytes stores data under key, replacing any previous object.
	SaveBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// SaveFileWithPath stores an upload under subPath with a generated name.
	SaveFileWithPath(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes the object behind a URL returned by this storage.
	// Missing objects are not an error.
	DeleteFile(ctx context.Context, fileURL string) error
}
