package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalService keeps uploads on the local filesystem under a single
// directory, served back through the /uploads route.
type LocalService struct {
	dir string
}

func NewLocalService(dir string) (*LocalService, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalService{dir: dir}, nil
}

func (s *LocalService) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name, err := safeName(filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return "/uploads/" + name, nil
}

func (s *LocalService) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	name, err := safeName(filename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return f, nil
}

func (s *LocalService) Remove(ctx context.Context, filename string) error {
	name, err := safeName(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

// safeName rejects anything that could escape the upload directory.
func safeName(filename string) (string, error) {
	name := filepath.Base(filepath.Clean(filename))
	if name == "" || name == "." || name == ".." || name != filename {
		return "", fmt.Errorf("invalid upload filename")
	}
	return name, nil
}

var _ Service = (*LocalService)(nil)
