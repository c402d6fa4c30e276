package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	commentEntity "nodebird/internal/core/comment"
	"nodebird/internal/core/errs"
	"nodebird/internal/core/hashtag"
	"nodebird/internal/core/image"
	postEntity "nodebird/internal/core/post"
	commentPort "nodebird/internal/ports/comment"
	likePort "nodebird/internal/ports/like"
	postPort "nodebird/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

const (
	LikeAdd    = likePort.Add
	LikeRemove = likePort.Remove
)

// PostService is the only writer of posts, comments and likes. Every
// mutation that yields a post or comment returns it re-read through the
// repository, so callers always see their own write.
type PostService struct {
	PostRepository    postPort.PostRepository
	CommentRepository commentPort.CommentRepository
	LikeRepository    likePort.LikeRepository
	logger            *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	likeRepo likePort.LikeRepository,
	logger *zap.Logger,
) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{
		PostRepository:    postRepo,
		CommentRepository: commentRepo,
		LikeRepository:    likeRepo,
		logger:            logger,
	}
}

// CreatePost stores the post with its images and hashtags and returns the
// resolved post.
func (s *PostService) CreatePost(ctx context.Context, content, authorID string, imagePaths []string) (*postPort.FullPostDTO, error) {
	uid, err := parseUser(authorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("post content is empty: %w", errs.ErrValidation)
	}

	p := &postEntity.Post{
		Content: content,
		UserID:  uid,
	}
	for _, src := range imagePaths {
		if src = strings.TrimSpace(src); src != "" {
			p.Images = append(p.Images, image.Image{Src: src})
		}
	}

	created, err := s.PostRepository.Create(ctx, p, hashtag.Extract(content))
	if err != nil {
		s.logger.Error("create post failed", zap.String("userID", authorID), zap.Error(err))
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info("post created", zap.String("postID", created.ID.String()), zap.String("userID", authorID))

	full, err := s.PostRepository.Resolve(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve post %s: %w", created.ID, err)
	}
	return ToFullPostDTO(full), nil
}

// DeletePost removes a post owned by requesterID together with its
// comments, images, likes and hashtag links.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID string) (*postPort.DeletedPostDTO, error) {
	uid, err := parseUser(requesterID)
	if err != nil {
		return nil, err
	}
	pid, err := parsePost(postID)
	if err != nil {
		return nil, err
	}

	p, err := s.PostRepository.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if p.UserID != uid {
		return nil, fmt.Errorf("post %s is not owned by %s: %w", postID, requesterID, errs.ErrForbidden)
	}

	if err := s.PostRepository.Delete(ctx, pid, uid); err != nil {
		return nil, fmt.Errorf("delete post %s: %w", postID, err)
	}
	s.logger.Info("post deleted", zap.String("postID", postID), zap.String("userID", requesterID))

	return &postPort.DeletedPostDTO{PostID: pid.String()}, nil
}

// CreateComment adds a comment to an existing post and returns it with its
// author attached.
func (s *PostService) CreateComment(ctx context.Context, postID, content, authorID string) (*commentPort.CommentDTO, error) {
	uid, err := parseUser(authorID)
	if err != nil {
		return nil, err
	}
	pid, err := parsePost(postID)
	if err != nil {
		return nil, err
	}

	if _, err := s.PostRepository.FindByID(ctx, pid); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content is empty: %w", errs.ErrValidation)
	}

	created, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		Content: content,
		PostID:  pid,
		UserID:  uid,
	})
	if err != nil {
		return nil, s.childWriteFailed(ctx, pid, err)
	}

	full, err := s.CommentRepository.Resolve(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve comment %s: %w", created.ID, err)
	}
	return ToCommentDTO(full), nil
}

// ToggleLike adds or removes the (post, user) like. Adding twice or
// removing a missing like changes nothing and still succeeds.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string, direction likePort.Direction) (*likePort.LikeDTO, error) {
	uid, err := parseUser(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parsePost(postID)
	if err != nil {
		return nil, err
	}

	if _, err := s.PostRepository.FindByID(ctx, pid); err != nil {
		return nil, err
	}

	switch direction {
	case LikeAdd:
		err = s.LikeRepository.Add(ctx, pid, uid)
	case LikeRemove:
		err = s.LikeRepository.Remove(ctx, pid, uid)
	default:
		return nil, fmt.Errorf("unknown like direction %d: %w", direction, errs.ErrValidation)
	}
	if err != nil {
		return nil, s.childWriteFailed(ctx, pid, err)
	}

	s.logger.Debug("like toggled",
		zap.String("postID", postID),
		zap.String("userID", userID),
		zap.Stringer("direction", direction),
	)
	return &likePort.LikeDTO{PostID: pid.String(), UserID: uid.String()}, nil
}

func (s *PostService) AddLike(ctx context.Context, postID, userID string) (*likePort.LikeDTO, error) {
	return s.ToggleLike(ctx, postID, userID, LikeAdd)
}

func (s *PostService) RemoveLike(ctx context.Context, postID, userID string) (*likePort.LikeDTO, error) {
	return s.ToggleLike(ctx, postID, userID, LikeRemove)
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*postPort.FullPostDTO, error) {
	pid, err := parsePost(postID)
	if err != nil {
		return nil, err
	}
	p, err := s.PostRepository.Resolve(ctx, pid)
	if err != nil {
		return nil, err
	}
	return ToFullPostDTO(p), nil
}

// ListPosts pages through all posts newest first. An empty lastID starts
// from the newest post.
func (s *PostService) ListPosts(ctx context.Context, lastID string, limit int) ([]*postPort.FullPostDTO, error) {
	cursor, err := parseCursor(lastID)
	if err != nil {
		return nil, err
	}
	posts, err := s.PostRepository.List(ctx, cursor, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toFullPostDTOs(posts), nil
}

// ListByHashtag is ListPosts restricted to one hashtag.
func (s *PostService) ListByHashtag(ctx context.Context, name, lastID string, limit int) ([]*postPort.FullPostDTO, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
	if name == "" {
		return nil, fmt.Errorf("hashtag is empty: %w", errs.ErrValidation)
	}
	cursor, err := parseCursor(lastID)
	if err != nil {
		return nil, err
	}
	posts, err := s.PostRepository.ListByHashtag(ctx, name, cursor, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toFullPostDTOs(posts), nil
}

// childWriteFailed turns a constraint failure on a comment or like insert
// into ErrNotFound when the parent post has disappeared meanwhile.
func (s *PostService) childWriteFailed(ctx context.Context, pid uuid.UUID, err error) error {
	if errors.Is(err, errs.ErrConstraint) {
		if _, findErr := s.PostRepository.FindByID(ctx, pid); errors.Is(findErr, errs.ErrNotFound) {
			return findErr
		}
	}
	s.logger.Error("write on post failed", zap.String("postID", pid.String()), zap.Error(err))
	return err
}

func parseUser(id string) (uuid.UUID, error) {
	if strings.TrimSpace(id) == "" {
		return uuid.Nil, errs.ErrUnauthorized
	}
	uid, err := uuid.FromString(id)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, fmt.Errorf("malformed user id %q: %w", id, errs.ErrUnauthorized)
	}
	return uid, nil
}

// parsePost treats a malformed id as a post that does not exist.
func parsePost(id string) (uuid.UUID, error) {
	pid, err := uuid.FromString(id)
	if err != nil || pid == uuid.Nil {
		return uuid.Nil, fmt.Errorf("post %q: %w", id, errs.ErrNotFound)
	}
	return pid, nil
}

func parseCursor(lastID string) (uuid.UUID, error) {
	if lastID == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.FromString(lastID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lastId %q: %w", lastID, errs.ErrValidation)
	}
	return id, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
