package comment

import (
	"context"
	"time"

	"nodebird/internal/core/comment"
	userPort "nodebird/internal/ports/user"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	// Resolve loads the comment with its author attached.
	Resolve(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
}

type CommentDTO struct {
	ID        string             `json:"id"`
	PostID    string             `json:"postId"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
	Author    userPort.AuthorDTO `json:"author"`
}
