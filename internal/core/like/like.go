package like

import (
	"time"

	"github.com/gofrs/uuid"
)

// Like is the post_likes relation row. The composite primary key is the
// one-like-per-user-per-post rule.
type Like struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "post_likes"
}
