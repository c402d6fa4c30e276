package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes uploads into a directory served by the HTTP router.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, BaseURL: baseURL}, nil
}

func (s *LocalStorage) Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	object := objectName(name)
	f, err := os.OpenFile(filepath.Join(s.Dir, object), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", object, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", object, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", object, err)
	}
	return publicURL(s.BaseURL, object), nil
}
