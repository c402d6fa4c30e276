package like

import (
	"context"

	"github.com/gofrs/uuid"
)

// LikeRepository writes the post_likes relation. Add of an existing pair and
// Remove of a missing pair both succeed without changing anything.
type LikeRepository interface {
	Add(ctx context.Context, postID, userID uuid.UUID) error
	Remove(ctx context.Context, postID, userID uuid.UUID) error
}

type LikeDTO struct {
	PostID string `json:"PostId"`
	UserID string `json:"UserId"`
}

// Direction selects what ToggleLike does with the pair.
type Direction int

const (
	Add Direction = iota
	Remove
)

func (d Direction) String() string {
	if d == Remove {
		return "remove"
	}
	return "add"
}
