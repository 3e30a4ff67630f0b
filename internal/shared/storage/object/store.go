package object

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrNotFound is returned by Open when no object exists at the key.
var ErrNotFound = errors.New("object not found")

// ErrInvalidKey is returned for empty keys or keys escaping the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// CleanKey normalizes a slash-separated storage key and rejects traversal.
func CleanKey(storageKey string) (string, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(storageKey, "\\", "/"))
	if raw == "" {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + raw)
	if clean == "/" || strings.Contains(raw, "..") {
		return "", ErrInvalidKey
	}
	return strings.TrimPrefix(clean, "/"), nil
}
