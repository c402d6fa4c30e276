package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "APP_ENV", "DB_DSN", "REDIS_ADDR", "REDIS_DB", "JWT_SECRET", "SESSION_TTL", "UPLOAD_DRIVER", "UPLOAD_DIR", "UPLOAD_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "3065", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "local", cfg.Uploads.Driver)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, "/img", cfg.Uploads.BaseURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DSN", "user:pass@tcp(db:3306)/nodebird?parseTime=true")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("UPLOAD_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "images")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "user:pass@tcp(db:3306)/nodebird?parseTime=true", cfg.DB.DSN)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, "images", cfg.Uploads.S3Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingSettings(t *testing.T) {
	cfg := &Config{}
	assert.EqualError(t, cfg.Validate(), "DB_DSN is not set")

	cfg.DB.DSN = "dsn"
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is not set")

	cfg.Auth.JWTSecret = "secret"
	cfg.Uploads.Driver = "s3"
	assert.Error(t, cfg.Validate())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("BAD_INT", "not-a-number")
	t.Setenv("TEST_DURATION", "5s")

	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 10))
	assert.Equal(t, 10, getEnvAsInt("BAD_INT", 10))
	assert.Equal(t, "fallback", getEnv("MISSING_KEY_FOR_TEST", "fallback"))
	assert.Equal(t, 5*time.Second, getEnvAsDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsDuration("MISSING_DURATION", time.Minute))
}
