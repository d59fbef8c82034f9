package upload

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// defaultContentType is used when the storage provider cannot determine a
// content type for a local resource.
const defaultContentType = "application/octet-stream"

// StorageProvider supplies readable byte streams and content types for named
// local resources. It is implemented by the embedding application; FileSystem
// is the default.
type StorageProvider interface {
	// MimeType returns the content type of the named resource, or "" if
	// unknown.
	MimeType(name string) string

	// Open returns a stream for the named resource. The stream may or may
	// not be seekable; the coordinator adapts either way.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSystem is a StorageProvider backed by the local filesystem.
type FileSystem struct{}

// MimeType ...
func (FileSystem) MimeType(name string) string {
	return mime.TypeByExtension(filepath.Ext(name))
}

// Open ...
func (FileSystem) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(name)
}
