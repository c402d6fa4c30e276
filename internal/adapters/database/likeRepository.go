package database

import (
	"context"

	"nodebird/internal/core/like"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepositoryDatabase writes post_likes. Uniqueness is the table's
// composite primary key, so concurrent adds of one pair leave one row.
type LikeRepositoryDatabase struct {
	db *gorm.DB
}

func NewLikeRepositoryDatabase(db *gorm.DB) *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{db: db}
}

func (repo *LikeRepositoryDatabase) Add(ctx context.Context, postID, userID uuid.UUID) error {
	l := &like.Like{PostID: postID, UserID: userID}
	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
	if err != nil && !isDuplicate(err) {
		return translate(err)
	}
	return nil
}

func (repo *LikeRepositoryDatabase) Remove(ctx context.Context, postID, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&like.Like{}).Error
	return translate(err)
}
