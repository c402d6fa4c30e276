package httpapi

import (
	"context"
	"net/http"
	"time"

	"nodebird/internal/adapters/httpapi/middleware"
	commentPort "nodebird/internal/ports/comment"
	likePort "nodebird/internal/ports/like"
	"nodebird/internal/ports/media"
	postPort "nodebird/internal/ports/post"
	userPort "nodebird/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserUseCase interface {
	RegisterUser(ctx context.Context, email, nickname, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	GetUser(ctx context.Context, userID string) (*userPort.UserDTO, error)
}

// PostUseCase is the mutation and read surface for posts. Every method that
// returns a post or comment returns it as re-read after the write.
type PostUseCase interface {
	CreatePost(ctx context.Context, content, authorID string, imagePaths []string) (*postPort.FullPostDTO, error)
	DeletePost(ctx context.Context, postID, requesterID string) (*postPort.DeletedPostDTO, error)
	CreateComment(ctx context.Context, postID, content, authorID string) (*commentPort.CommentDTO, error)
	AddLike(ctx context.Context, postID, userID string) (*likePort.LikeDTO, error)
	RemoveLike(ctx context.Context, postID, userID string) (*likePort.LikeDTO, error)
	GetPost(ctx context.Context, postID string) (*postPort.FullPostDTO, error)
	ListPosts(ctx context.Context, lastID string, limit int) ([]*postPort.FullPostDTO, error)
	ListByHashtag(ctx context.Context, name, lastID string, limit int) ([]*postPort.FullPostDTO, error)
}

// AccessGate identifies callers and manages their server-side sessions.
type AccessGate interface {
	middleware.UserResolver
	OpenSession(ctx context.Context, userID string) (string, error)
	CloseSession(ctx context.Context, sid string) error
	SessionTTL() time.Duration
}

// Options carries the optional router settings.
type Options struct {
	// StaticDir, when set, is served under StaticPrefix for locally stored
	// uploads.
	StaticDir    string
	StaticPrefix string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

// SetupRoutes wires the use cases into a gin engine. Routing only; every
// dependency is injected by the caller.
func SetupRoutes(
	logger *zap.Logger,
	gate AccessGate,
	userUC UserUseCase,
	postUC PostUseCase,
	storage media.Storage,
	opts Options,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Authenticate(gate, logger))

	uc := NewUserController(userUC, gate, logger, opts.SecureCookies)
	pc := NewPostController(postUC, logger)
	fc := NewFeedController(postUC, logger)
	mc := NewUploadController(storage, logger)

	if opts.StaticDir != "" {
		prefix := opts.StaticPrefix
		if prefix == "" {
			prefix = "/img"
		}
		r.Static(prefix, opts.StaticDir)
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	user := r.Group("/user")
	user.GET("", uc.Me)
	user.POST("", middleware.RequireGuest(), uc.RegisterUser)
	user.POST("/login", middleware.RequireGuest(), uc.LoginUser)
	user.POST("/logout", middleware.RequireUser(), uc.LogoutUser)

	post := r.Group("/post")
	post.POST("", middleware.RequireUser(), pc.CreatePost)
	post.POST("/images", middleware.RequireUser(), mc.UploadImages)
	post.GET("/:postId", pc.GetPost)
	post.DELETE("/:postId", middleware.RequireUser(), pc.DeletePost)
	post.POST("/:postId/comment", middleware.RequireUser(), pc.CreateComment)
	post.PATCH("/:postId/like", middleware.RequireUser(), pc.AddLike)
	post.DELETE("/:postId/like", middleware.RequireUser(), pc.RemoveLike)

	r.GET("/posts", fc.ListPosts)
	r.GET("/hashtag/:name", fc.ListByHashtag)

	return r
}
