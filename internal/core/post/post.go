package post

import (
	"time"

	"nodebird/internal/core/comment"
	"nodebird/internal/core/hashtag"
	"nodebird/internal/core/image"
	"nodebird/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Post is the root of the content graph. Comments and Images are owned and
// cascade with it; Likers and Hashtags are pure relation tables.
type Post struct {
	ID        uuid.UUID         `gorm:"primaryKey;type:char(36)"`
	Content   string            `gorm:"type:text;not null"`
	UserID    uuid.UUID         `gorm:"type:char(36);not null;index"`
	User      user.User         `gorm:"foreignKey:UserID"`
	Likers    []user.User       `gorm:"many2many:post_likes;joinForeignKey:PostID;joinReferences:UserID"`
	Comments  []comment.Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Images    []image.Image     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Hashtags  []hashtag.Hashtag `gorm:"many2many:post_hashtags;joinForeignKey:PostID;joinReferences:HashtagID"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
