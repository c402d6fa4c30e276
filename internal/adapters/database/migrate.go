package database

import (
	"fmt"

	"nodebird/internal/core/comment"
	"nodebird/internal/core/hashtag"
	"nodebird/internal/core/image"
	"nodebird/internal/core/like"
	"nodebird/internal/core/post"
	"nodebird/internal/core/user"

	"gorm.io/gorm"
)

// Migrate registers the explicit relation tables and creates the schema.
// It must run before any repository touches the Likers or Hashtags
// associations.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&post.Post{}, "Likers", &like.Like{}); err != nil {
		return fmt.Errorf("setup post_likes: %w", err)
	}
	if err := db.SetupJoinTable(&post.Post{}, "Hashtags", &hashtag.PostHashtag{}); err != nil {
		return fmt.Errorf("setup post_hashtags: %w", err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&comment.Comment{},
		&image.Image{},
		&hashtag.Hashtag{},
		&like.Like{},
		&hashtag.PostHashtag{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
