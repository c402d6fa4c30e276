// Package storage holds the media.Storage implementations used for post
// images: local disk for development and S3-compatible object storage.
package storage

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// objectName keeps the extension of the uploaded file and replaces the rest
// with a random id so names never collide or escape the target directory.
func objectName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if !allowedExt[ext] {
		ext = ""
	}
	return uuid.Must(uuid.NewV4()).String() + ext
}

func publicURL(base, name string) string {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return strings.TrimRight(base, "/") + "/" + name
	}
	return path.Join("/", base, name)
}
