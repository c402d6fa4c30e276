package userapp

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"nodebird/internal/core/errs"
	userEntity "nodebird/internal/core/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Fake UserRepository ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userEntity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userEntity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, fmt.Errorf("email: %w", errs.ErrConstraint)
		}
	}
	u.ID = uuid.Must(uuid.NewV4())
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*userEntity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

var testKey = []byte("test-secret")

func TestRegisterUser_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, testKey, time.Hour, nil)

	dto, err := svc.RegisterUser(context.Background(), " Alice@Example.com ", "alice", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", dto.Email)
	assert.Equal(t, "alice", dto.Nickname)

	stored, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", stored.Password)
}

func TestRegisterUser_Rejections(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testKey, time.Hour, nil)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "not-an-email", "alice", "pw")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.RegisterUser(ctx, "a@example.com", "", "pw")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.RegisterUser(ctx, "a@example.com", "alice", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.RegisterUser(ctx, "a@example.com", "alice", "pw")
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "A@example.com", "other", "pw")
	assert.ErrorIs(t, err, errs.ErrConstraint)
}

func TestLoginUser_IssuesToken(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testKey, time.Hour, nil)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, "bob@example.com", "bob", "hunter22")
	require.NoError(t, err)

	res, err := svc.LoginUser(ctx, "bob@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res.User.ID)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) { return testKey, nil })
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, registered.ID, claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestLoginUser_BadCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testKey, time.Hour, nil)
	ctx := context.Background()
	_, err := svc.RegisterUser(ctx, "bob@example.com", "bob", "hunter22")
	require.NoError(t, err)

	_, err = svc.LoginUser(ctx, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = svc.LoginUser(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestGetUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testKey, time.Hour, nil)
	ctx := context.Background()
	registered, err := svc.RegisterUser(ctx, "carol@example.com", "carol", "pw")
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Nickname)

	_, err = svc.GetUser(ctx, uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.GetUser(ctx, "nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
