package image

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Image is an uploaded file attached to a post. Src is whatever the media
// storage returned: a relative path for local disk, a URL for S3.
type Image struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Src       string    `gorm:"type:varchar(500);not null"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
