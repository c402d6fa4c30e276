package media

import (
	"context"
	"io"
)

// Storage persists uploaded image bytes and returns the src clients use to
// fetch them.
type Storage interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}
