package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedController serves the paged read routes.
type FeedController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewFeedController(pc PostUseCase, logger *zap.Logger) *FeedController {
	return &FeedController{pc: pc, logger: logger}
}

func (ctl *FeedController) ListPosts(c *gin.Context) {
	posts, err := ctl.pc.ListPosts(c.Request.Context(), c.Query("lastId"), queryLimit(c))
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) ListByHashtag(c *gin.Context) {
	posts, err := ctl.pc.ListByHashtag(c.Request.Context(), c.Param("name"), c.Query("lastId"), queryLimit(c))
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// queryLimit returns 0 for a missing or malformed limit so the use case
// applies its default.
func queryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}
