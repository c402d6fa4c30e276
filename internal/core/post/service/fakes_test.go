package postapp

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	commentEntity "nodebird/internal/core/comment"
	"nodebird/internal/core/errs"
	"nodebird/internal/core/hashtag"
	postEntity "nodebird/internal/core/post"
	userEntity "nodebird/internal/core/user"

	"github.com/gofrs/uuid"
)

// ---- In-memory store backing the post, comment and like fakes ----

type likeKey struct {
	post uuid.UUID
	user uuid.UUID
}

type memStore struct {
	mu       sync.Mutex
	clock    time.Time
	users    map[uuid.UUID]userEntity.User
	posts    map[uuid.UUID]*postEntity.Post
	tags     map[uuid.UUID][]string
	comments map[uuid.UUID]*commentEntity.Comment
	likes    map[likeKey]struct{}

	// beforeCommentInsert runs with the lock released, just before a
	// comment is stored. Tests use it to race a delete.
	beforeCommentInsert func()
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    make(map[uuid.UUID]userEntity.User),
		posts:    make(map[uuid.UUID]*postEntity.Post),
		tags:     make(map[uuid.UUID][]string),
		comments: make(map[uuid.UUID]*commentEntity.Comment),
		likes:    make(map[likeKey]struct{}),
	}
}

func (m *memStore) addUser(nickname string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.Must(uuid.NewV4())
	m.users[id] = userEntity.User{ID: id, Nickname: nickname, Email: nickname + "@example.com"}
	return id
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) author(id uuid.UUID) userEntity.User {
	u := m.users[id]
	return userEntity.User{ID: u.ID, Nickname: u.Nickname}
}

func (m *memStore) likeCount(postID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.likes {
		if k.post == postID {
			n++
		}
	}
	return n
}

func (m *memStore) commentCount(postID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (m *memStore) imageCount(postID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.posts[postID]; ok {
		return len(p.Images)
	}
	return 0
}

// resolve must be called with the lock held.
func (m *memStore) resolve(id uuid.UUID) (*postEntity.Post, error) {
	stored, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, errs.ErrNotFound)
	}
	p := *stored
	p.User = m.author(p.UserID)
	p.Images = append(p.Images[:0:0], stored.Images...)

	p.Likers = nil
	for k := range m.likes {
		if k.post == id {
			p.Likers = append(p.Likers, userEntity.User{ID: k.user})
		}
	}

	p.Comments = nil
	for _, c := range m.comments {
		if c.PostID == id {
			cc := *c
			cc.User = m.author(c.UserID)
			p.Comments = append(p.Comments, cc)
		}
	}
	sort.Slice(p.Comments, func(i, j int) bool { return p.Comments[i].CreatedAt.Before(p.Comments[j].CreatedAt) })

	p.Hashtags = nil
	for _, name := range m.tags[id] {
		p.Hashtags = append(p.Hashtags, hashtag.Hashtag{Name: name})
	}
	return &p, nil
}

type fakePostRepo struct{ *memStore }

func (f fakePostRepo) Create(ctx context.Context, p *postEntity.Post, tags []string) (*postEntity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[p.UserID]; !ok {
		return nil, fmt.Errorf("user %s: %w", p.UserID, errs.ErrConstraint)
	}
	p.ID = uuid.Must(uuid.NewV4())
	p.CreatedAt = f.tick()
	for i := range p.Images {
		p.Images[i].ID = uuid.Must(uuid.NewV4())
		p.Images[i].PostID = p.ID
	}
	stored := *p
	f.posts[p.ID] = &stored
	f.tags[p.ID] = tags
	return p, nil
}

func (f fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*postEntity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, errs.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f fakePostRepo) Resolve(ctx context.Context, id uuid.UUID) (*postEntity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolve(id)
}

func (f fakePostRepo) ResolveMany(ctx context.Context, ids []uuid.UUID) ([]*postEntity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*postEntity.Post{}
	for _, id := range ids {
		if p, err := f.resolve(id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f fakePostRepo) List(ctx context.Context, lastID uuid.UUID, limit int) ([]*postEntity.Post, error) {
	return f.list(lastID, limit, func(uuid.UUID) bool { return true })
}

func (f fakePostRepo) ListByHashtag(ctx context.Context, name string, lastID uuid.UUID, limit int) ([]*postEntity.Post, error) {
	return f.list(lastID, limit, func(id uuid.UUID) bool {
		for _, t := range f.tags[id] {
			if t == name {
				return true
			}
		}
		return false
	})
}

func (f fakePostRepo) list(lastID uuid.UUID, limit int, keep func(uuid.UUID) bool) ([]*postEntity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ordered []*postEntity.Post
	for _, p := range f.posts {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].CreatedAt.After(ordered[j].CreatedAt) })

	var after time.Time
	if lastID != uuid.Nil {
		cursor, ok := f.posts[lastID]
		if !ok {
			return nil, fmt.Errorf("post %s: %w", lastID, errs.ErrNotFound)
		}
		after = cursor.CreatedAt
	}

	out := []*postEntity.Post{}
	for _, p := range ordered {
		if len(out) == limit {
			break
		}
		if !after.IsZero() && !p.CreatedAt.Before(after) {
			continue
		}
		if !keep(p.ID) {
			continue
		}
		full, _ := f.resolve(p.ID)
		out = append(out, full)
	}
	return out, nil
}

func (f fakePostRepo) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok || p.UserID != authorID {
		return fmt.Errorf("post %s: %w", id, errs.ErrNotFound)
	}
	for cid, c := range f.comments {
		if c.PostID == id {
			delete(f.comments, cid)
		}
	}
	for k := range f.likes {
		if k.post == id {
			delete(f.likes, k)
		}
	}
	delete(f.tags, id)
	delete(f.posts, id)
	return nil
}

type fakeCommentRepo struct{ *memStore }

func (f fakeCommentRepo) Create(ctx context.Context, c *commentEntity.Comment) (*commentEntity.Comment, error) {
	if f.beforeCommentInsert != nil {
		f.beforeCommentInsert()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[c.PostID]; !ok {
		return nil, fmt.Errorf("comment post_id %s: %w", c.PostID, errs.ErrConstraint)
	}
	c.ID = uuid.Must(uuid.NewV4())
	c.CreatedAt = f.tick()
	stored := *c
	f.comments[c.ID] = &stored
	return c, nil
}

func (f fakeCommentRepo) Resolve(ctx context.Context, id uuid.UUID) (*commentEntity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, errs.ErrNotFound)
	}
	cp := *c
	cp.User = f.author(c.UserID)
	return &cp, nil
}

type fakeLikeRepo struct{ *memStore }

func (f fakeLikeRepo) Add(ctx context.Context, postID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[postID]; !ok {
		return fmt.Errorf("like post_id %s: %w", postID, errs.ErrConstraint)
	}
	f.likes[likeKey{post: postID, user: userID}] = struct{}{}
	return nil
}

func (f fakeLikeRepo) Remove(ctx context.Context, postID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.likes, likeKey{post: postID, user: userID})
	return nil
}

func newTestService() (*PostService, *memStore) {
	store := newMemStore()
	svc := NewPostService(fakePostRepo{store}, fakeCommentRepo{store}, fakeLikeRepo{store}, nil)
	return svc, store
}
