// Package authapp resolves the caller's identity from whatever credentials
// the request carried. A server-held session and a signed token are
// interchangeable: both yield the same user id.
package authapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nodebird/internal/core/errs"
	authPort "nodebird/internal/ports/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type Gate struct {
	Sessions   authPort.SessionStore
	jwtKey     []byte
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewGate(sessions authPort.SessionStore, jwtKey []byte, sessionTTL time.Duration, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Gate{
		Sessions:   sessions,
		jwtKey:     jwtKey,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// CurrentUser returns the authenticated user id. ok is false when no
// credential was presented or none of them is valid; err is reserved for
// store failures.
func (g *Gate) CurrentUser(ctx context.Context, creds authPort.Credentials) (string, bool, error) {
	if creds.SessionID != "" {
		userID, err := g.Sessions.Find(ctx, creds.SessionID)
		switch {
		case err == nil:
			if err := g.Sessions.Touch(ctx, creds.SessionID, g.sessionTTL); err != nil {
				g.logger.Warn("session touch failed", zap.Error(err))
			}
			return userID, true, nil
		case !errors.Is(err, errs.ErrNotFound):
			return "", false, fmt.Errorf("find session: %w", err)
		}
	}

	if creds.BearerToken != "" {
		userID, err := g.ParseToken(creds.BearerToken)
		if err == nil {
			return userID, true, nil
		}
		g.logger.Debug("bearer token rejected", zap.Error(err))
	}

	return "", false, nil
}

// OpenSession stores a new session for userID and returns its id.
func (g *Gate) OpenSession(ctx context.Context, userID string) (string, error) {
	sid := uuid.Must(uuid.NewV4()).String()
	if err := g.Sessions.Save(ctx, sid, userID, g.sessionTTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sid, nil
}

func (g *Gate) CloseSession(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return g.Sessions.Delete(ctx, sid)
}

func (g *Gate) SessionTTL() time.Duration {
	return g.sessionTTL
}

// ParseToken verifies an HS256 token and returns its subject.
func (g *Gate) ParseToken(raw string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.jwtKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, errs.ErrUnauthorized)
	}
	if !token.Valid {
		return "", errs.ErrUnauthorized
	}
	if _, err := uuid.FromString(claims.Subject); err != nil {
		return "", fmt.Errorf("token subject: %w", errs.ErrUnauthorized)
	}
	return claims.Subject, nil
}
