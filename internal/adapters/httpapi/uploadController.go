package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"nodebird/internal/ports/media"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxUploadFiles = 4
	maxUploadSize  = 20 << 20
)

type UploadController struct {
	storage media.Storage
	logger  *zap.Logger
}

func NewUploadController(storage media.Storage, logger *zap.Logger) *UploadController {
	return &UploadController{storage: storage, logger: logger}
}

// UploadImages stores the multipart "image" files and returns their srcs,
// which the client then sends back with POST /post.
func (ctl *UploadController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}
	files := form.File["image"]
	if len(files) == 0 || len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("between 1 and %d images required", maxUploadFiles)})
		return
	}

	srcs := make([]string, 0, len(files))
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only images can be uploaded"})
			return
		}
		if fh.Size > maxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
			return
		}
		src, err := ctl.storage.Save(c.Request.Context(), fh.Filename, contentType, f, fh.Size)
		f.Close()
		if err != nil {
			ctl.logger.Error("store upload failed", zap.String("file", fh.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
			return
		}
		srcs = append(srcs, src)
	}
	c.JSON(http.StatusOK, srcs)
}
