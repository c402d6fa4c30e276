package post

import (
	"context"
	"time"

	"nodebird/internal/core/post"
	commentPort "nodebird/internal/ports/comment"
	userPort "nodebird/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository is the Entity Store and Association Resolver for posts.
//
// Resolve and ResolveMany return fully loaded posts (author, likers,
// comments with authors, images, hashtags) read in one transaction, or
// errs.ErrNotFound. FindByID returns the bare row.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post, tags []string) (*post.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	Resolve(ctx context.Context, id uuid.UUID) (*post.Post, error)
	ResolveMany(ctx context.Context, ids []uuid.UUID) ([]*post.Post, error)
	List(ctx context.Context, lastID uuid.UUID, limit int) ([]*post.Post, error)
	ListByHashtag(ctx context.Context, name string, lastID uuid.UUID, limit int) ([]*post.Post, error)
	Delete(ctx context.Context, id, authorID uuid.UUID) error
}

type LikerDTO struct {
	ID string `json:"id"`
}

type ImageDTO struct {
	ID  string `json:"id"`
	Src string `json:"src"`
}

// FullPostDTO is the resolved read model returned after every post mutation.
type FullPostDTO struct {
	ID        string                    `json:"id"`
	Content   string                    `json:"content"`
	CreatedAt time.Time                 `json:"createdAt"`
	Author    userPort.AuthorDTO        `json:"author"`
	Likers    []LikerDTO                `json:"likers"`
	Comments  []*commentPort.CommentDTO `json:"comments"`
	Images    []ImageDTO                `json:"images"`
	Hashtags  []string                  `json:"hashtags"`
}

type DeletedPostDTO struct {
	PostID string `json:"PostId"`
}
