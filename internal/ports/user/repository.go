package user

import (
	"context"
	"time"

	"nodebird/internal/core/user"

	"github.com/gofrs/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type LoginResponse struct {
	User      *UserDTO `json:"user"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorDTO is the public slice of a user embedded in posts and comments.
type AuthorDTO struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}
