package httpapi

import (
	"net/http"

	"nodebird/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, logger: logger}
}

// CreatePost accepts JSON or form bodies. image holds srcs previously
// returned by POST /post/images.
func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Content string   `json:"content" form:"content"`
		Image   []string `json:"image" form:"image"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	res, err := ctl.pc.CreatePost(c.Request.Context(), req.Content, c.GetString(middleware.ContextUserID), req.Image)
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	res, err := ctl.pc.GetPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	res, err := ctl.pc.DeletePost(c.Request.Context(), c.Param("postId"), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) CreateComment(c *gin.Context) {
	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	res, err := ctl.pc.CreateComment(c.Request.Context(), c.Param("postId"), req.Content, c.GetString(middleware.ContextUserID))
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusForbidden)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) AddLike(c *gin.Context) {
	res, err := ctl.pc.AddLike(c.Request.Context(), c.Param("postId"), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusForbidden)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) RemoveLike(c *gin.Context) {
	res, err := ctl.pc.RemoveLike(c.Request.Context(), c.Param("postId"), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusForbidden)
		return
	}
	c.JSON(http.StatusOK, res)
}
