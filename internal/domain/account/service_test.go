package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
)

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	nextID int64
	users  map[int64]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*User)}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (f *fakeRepo) Exists(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperror.NewNotFound("user", u.ID)
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, noopTxManager{}, jwtService, DefaultServiceConfig()), repo
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{
		Email:    "owner@shop.local",
		Password: "correct-horse",
		FullName: "Shop Owner",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, first.Role)

	second, err := svc.Register(ctx, RegisterRequest{
		Email:    "seller@shop.local",
		Password: "battery-staple",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleSeller, second.Role)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "owner@shop.local",
		Password: "short",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "owner@shop.local", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "owner@shop.local", Password: "another-pass"})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Owner@Shop.Local ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.local", user.Email)
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Email:    "owner@shop.local",
		Password: "correct-horse",
		FullName: "Shop Owner",
	})
	require.NoError(t, err)

	tokens, user, err := svc.Login(ctx, Credentials{Email: "owner@shop.local", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, registered.ID, user.ID)

	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	claims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "owner@shop.local", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, Credentials{Email: "owner@shop.local", Password: "wrong"})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Login(context.Background(), Credentials{Email: "ghost@shop.local", Password: "whatever"})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}
