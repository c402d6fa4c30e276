package hashtag

import (
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Hashtag struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (h *Hashtag) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

// PostHashtag is the post_hashtags relation row.
type PostHashtag struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	HashtagID uuid.UUID `gorm:"primaryKey;type:char(36)"`
}

func (PostHashtag) TableName() string {
	return "post_hashtags"
}

var tagPattern = regexp.MustCompile(`#[^\s#]+`)

// Extract returns the distinct, lower-cased tag names in content, in order
// of first appearance and without the leading '#'.
func Extract(content string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range tagPattern.FindAllString(content, -1) {
		name := strings.ToLower(strings.TrimPrefix(m, "#"))
		if len(name) > 100 {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
