package httpapi

import (
	"errors"
	"net/http"

	"nodebird/internal/core/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps a use-case error onto a status code. notFound is the
// status used for errs.ErrNotFound; routes acting on a child of a post
// answer 403 when the post is missing.
func writeError(c *gin.Context, logger *zap.Logger, err error, notFound int) {
	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "login required"
	case errors.Is(err, errs.ErrForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrNotFound):
		status, msg = notFound, "post not found"
	case errors.Is(err, errs.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrConstraint):
		status, msg = http.StatusConflict, "conflict"
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
