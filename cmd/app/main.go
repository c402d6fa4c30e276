package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	dbadapter "nodebird/internal/adapters/database"
	"nodebird/internal/adapters/httpapi"
	redisadapter "nodebird/internal/adapters/redis"
	"nodebird/internal/adapters/storage"
	"nodebird/internal/config"
	authapp "nodebird/internal/core/auth/service"
	postapp "nodebird/internal/core/post/service"
	userapp "nodebird/internal/core/user/service"
	"nodebird/internal/ports/media"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	config.InitLogger(cfg.App.Env)
	defer config.Logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		config.Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.InitDB(cfg.DB); err != nil {
		config.Logger.Fatal("Database unavailable", zap.Error(err))
	}
	if err := dbadapter.Migrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.InitRedis(ctx, cfg.Redis); err != nil {
		config.Logger.Fatal("Redis unavailable", zap.Error(err))
	}
	defer closeResources()

	images, staticDir, err := newStorage(ctx, cfg.Uploads)
	if err != nil {
		config.Logger.Fatal("Image storage unavailable", zap.Error(err))
	}

	jwtKey := []byte(cfg.Auth.JWTSecret)
	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	likeRepo := dbadapter.NewLikeRepositoryDatabase(config.DB)
	sessionRepo := redisadapter.NewSessionRepositoryRedis(config.RedisClient)

	userSvc := userapp.NewUserService(userRepo, jwtKey, cfg.Auth.TokenTTL, config.Logger)
	postSvc := postapp.NewPostService(postRepo, commentRepo, likeRepo, config.Logger)
	gate := authapp.NewGate(sessionRepo, jwtKey, cfg.Auth.SessionTTL, config.Logger)

	r := httpapi.SetupRoutes(config.Logger, gate, userSvc, postSvc, images, httpapi.Options{
		StaticDir:     staticDir,
		StaticPrefix:  cfg.Uploads.BaseURL,
		SecureCookies: cfg.App.Env == "production",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// newStorage picks the image backend. staticDir is non-empty only when the
// router itself serves the uploaded files.
func newStorage(ctx context.Context, cfg config.UploadConfig) (media.Storage, string, error) {
	if cfg.Driver == "s3" {
		s, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
		return s, "", err
	}

	s, err := storage.NewLocalStorage(cfg.Dir, cfg.BaseURL)
	if err != nil {
		return nil, "", err
	}
	if !strings.HasPrefix(cfg.BaseURL, "/") {
		// Files are served by something else, e.g. a CDN in front of Dir.
		return s, "", nil
	}
	return s, cfg.Dir, nil
}

// closeResources closes Redis and the database pool.
func closeResources() {
	config.CloseRedis()
	config.CloseDB()
}
