package middleware

import (
	"context"
	"net/http"
	"strings"

	authPort "nodebird/internal/ports/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "userID"
	// SessionCookie names the cookie carrying the server-side session id.
	SessionCookie = "sid"
)

type UserResolver interface {
	CurrentUser(ctx context.Context, creds authPort.Credentials) (string, bool, error)
}

// Authenticate resolves the caller from the session cookie or bearer token
// and stores the user id on the context. Anonymous requests pass through.
func Authenticate(gate UserResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := Credentials(c)
		if creds.SessionID == "" && creds.BearerToken == "" {
			c.Next()
			return
		}

		userID, ok, err := gate.CurrentUser(c.Request.Context(), creds)
		if err != nil {
			logger.Error("resolve current user failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if ok {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// Credentials collects whatever the request presented.
func Credentials(c *gin.Context) authPort.Credentials {
	var creds authPort.Credentials
	if sid, err := c.Cookie(SessionCookie); err == nil {
		creds.SessionID = sid
	}
	if h := c.GetHeader("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		creds.BearerToken = strings.TrimSpace(h[7:])
	}
	return creds
}

// RequireUser rejects anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// RequireGuest rejects requests that are already authenticated.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserID) != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "already logged in"})
			return
		}
		c.Next()
	}
}
