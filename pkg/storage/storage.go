package storage

import (
	"context"
	"io"
)

// Storage abstracts the object store that holds medical report files. Rows
// in the database only keep the public URL returned by Upload.
type Storage interface {
	Upload(ctx context.Context, path string, contentType string, r io.Reader) (string, error)
	PublicURL(path string) string
}
