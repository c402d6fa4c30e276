package database

import (
	"context"
	"fmt"
	"strings"

	"nodebird/internal/core/comment"
	"nodebird/internal/core/errs"
	"nodebird/internal/core/hashtag"
	"nodebird/internal/core/image"
	"nodebird/internal/core/like"
	"nodebird/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on GORM.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase builds a PostRepositoryDatabase.
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

// Create inserts the post, its images and its hashtag links in one
// transaction. Existing hashtags are reused by name.
func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post, tags []string) (*post.Post, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}

		if len(p.Images) > 0 {
			for i := range p.Images {
				p.Images[i].PostID = p.ID
			}
			if err := tx.Create(&p.Images).Error; err != nil {
				return err
			}
		}

		if len(tags) == 0 {
			return nil
		}
		stored, err := upsertHashtags(tx, tags)
		if err != nil {
			return err
		}
		links := make([]hashtag.PostHashtag, 0, len(stored))
		for _, h := range stored {
			links = append(links, hashtag.PostHashtag{PostID: p.ID, HashtagID: h.ID})
		}
		p.Hashtags = stored
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// upsertHashtags inserts missing names and returns the stored rows. A
// concurrent insert of the same name is absorbed by the unique index.
func upsertHashtags(tx *gorm.DB, names []string) ([]hashtag.Hashtag, error) {
	rows := make([]hashtag.Hashtag, 0, len(names))
	for _, name := range names {
		rows = append(rows, hashtag.Hashtag{Name: name})
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return nil, err
	}

	var stored []hashtag.Hashtag
	if err := tx.Where("name IN ?", names).Order("name").Find(&stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Resolve reads the full post graph inside one transaction so the author,
// likers, comments and images all come from the same snapshot.
func (repo *PostRepositoryDatabase) Resolve(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return preloadFull(tx).First(&p, "posts.id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// ResolveMany resolves a set of posts in one transaction. The result keeps
// the order of ids; ids with no post are skipped.
func (repo *PostRepositoryDatabase) ResolveMany(ctx context.Context, ids []uuid.UUID) ([]*post.Post, error) {
	if len(ids) == 0 {
		return []*post.Post{}, nil
	}

	var found []*post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return preloadFull(tx).Where("posts.id IN ?", ids).Find(&found).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	byID := make(map[uuid.UUID]*post.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	posts := make([]*post.Post, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
			delete(byID, id)
		}
	}
	return posts, nil
}

// List returns resolved posts newest first, starting after lastID when it
// is set.
func (repo *PostRepositoryDatabase) List(ctx context.Context, lastID uuid.UUID, limit int) ([]*post.Post, error) {
	return repo.list(ctx, lastID, limit, nil)
}

// ListByHashtag is List restricted to posts tagged with name.
func (repo *PostRepositoryDatabase) ListByHashtag(ctx context.Context, name string, lastID uuid.UUID, limit int) ([]*post.Post, error) {
	name = strings.ToLower(name)
	return repo.list(ctx, lastID, limit, func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
			Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
			Where("hashtags.name = ?", name)
	})
}

func (repo *PostRepositoryDatabase) list(ctx context.Context, lastID uuid.UUID, limit int, scope func(*gorm.DB) *gorm.DB) ([]*post.Post, error) {
	posts := []*post.Post{}
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := preloadFull(tx).Select("posts.*")
		if scope != nil {
			q = scope(q)
		}

		if lastID != uuid.Nil {
			var cursor post.Post
			if err := tx.Select("id", "created_at").First(&cursor, "id = ?", lastID).Error; err != nil {
				return err
			}
			q = q.Where("posts.created_at < ? OR (posts.created_at = ? AND posts.id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
		}

		return q.Order("posts.created_at DESC").Order("posts.id DESC").Limit(limit).Find(&posts).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// Delete removes the post and everything that hangs off it in one
// transaction. Zero rows deleted for the post itself means it was already
// gone or is not owned by authorID.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&comment.Comment{},
			&image.Image{},
			&like.Like{},
			&hashtag.PostHashtag{},
		} {
			if err := tx.Where("post_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ? AND user_id = ?", id, authorID).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post %s: %w", id, errs.ErrNotFound)
		}
		return nil
	})
	return translate(err)
}

func selectAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "nickname")
}

func preloadFull(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", selectAuthor).
		Preload("Likers", selectAuthor).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC").Order("comments.id ASC")
		}).
		Preload("Comments.User", selectAuthor).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.created_at ASC").Order("images.id ASC")
		}).
		Preload("Hashtags", func(db *gorm.DB) *gorm.DB {
			return db.Order("hashtags.name ASC")
		})
}
