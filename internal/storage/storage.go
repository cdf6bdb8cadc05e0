package storage

import (
	"context"
	"io"
)

// Service stores uploaded images and hands them back by filename. Save
// returns the public path the file is retrievable at.
type Service interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	Remove(ctx context.Context, filename string) error
}
