package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Uploads UploadConfig
}

type AppConfig struct {
	Port string
	Env  string // development, production
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

// UploadConfig selects where uploaded post images are written.
type UploadConfig struct {
	Driver  string // local, s3
	Dir     string
	BaseURL string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Port: getEnv("APP_PORT", "3065"),
			Env:  getEnv("APP_ENV", "development"),
		},
		DB: DBConfig{
			DSN:          os.Getenv("DB_DSN"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Uploads: UploadConfig{
			Driver:            getEnv("UPLOAD_DRIVER", "local"),
			Dir:               getEnv("UPLOAD_DIR", "uploads"),
			BaseURL:           getEnv("UPLOAD_BASE_URL", "/img"),
			S3Bucket:          os.Getenv("S3_BUCKET"),
			S3Region:          getEnv("S3_REGION", "auto"),
			S3Endpoint:        os.Getenv("S3_ENDPOINT"),
			S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		},
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DB.DSN == "" {
		return errors.New("DB_DSN is not set")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.Uploads.Driver == "s3" && c.Uploads.S3Bucket == "" {
		return errors.New("S3_BUCKET is required when UPLOAD_DRIVER=s3")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
