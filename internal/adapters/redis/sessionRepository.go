package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nodebird/internal/core/errs"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// SessionRepositoryRedis keeps session records as plain string keys with an
// expiry. Nothing else is stored in Redis.
type SessionRepositoryRedis struct {
	Client *redis.Client
}

func NewSessionRepositoryRedis(client *redis.Client) *SessionRepositoryRedis {
	return &SessionRepositoryRedis{
		Client: client,
	}
}

func (r *SessionRepositoryRedis) Save(ctx context.Context, sid, userID string, ttl time.Duration) error {
	return r.Client.Set(ctx, sessionPrefix+sid, userID, ttl).Err()
}

func (r *SessionRepositoryRedis) Find(ctx context.Context, sid string) (string, error) {
	userID, err := r.Client.Get(ctx, sessionPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session: %w", errs.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Touch extends the expiry of a live session. A missing session is left
// missing.
func (r *SessionRepositoryRedis) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	return r.Client.Expire(ctx, sessionPrefix+sid, ttl).Err()
}

func (r *SessionRepositoryRedis) Delete(ctx context.Context, sid string) error {
	return r.Client.Del(ctx, sessionPrefix+sid).Err()
}
