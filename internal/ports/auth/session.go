package auth

import (
	"context"
	"time"
)

// SessionStore keeps server-side sessions keyed by an opaque session id.
// Find returns errs.ErrNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, sid, userID string, ttl time.Duration) error
	Find(ctx context.Context, sid string) (string, error)
	Touch(ctx context.Context, sid string, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}

// Credentials are whatever the caller presented. Either field may be empty.
type Credentials struct {
	SessionID   string
	BearerToken string
}
