package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receipegram/backend/internal/domain/entity"
	"github.com/receipegram/backend/internal/domain/repository"
	"github.com/receipegram/backend/pkg/helpers"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == login || u.Email == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id int64, fullName, bio string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.FullName = fullName
	u.Bio = bio
	return nil
}

func (f *fakeUserRepo) Search(_ context.Context, query string, limit int) ([]entity.UserSummary, error) {
	var out []entity.UserSummary
	for id := int64(1); id <= f.nextID && len(out) < limit; id++ {
		u, ok := f.users[id]
		if !ok {
			continue
		}
		if strings.Contains(u.Username, query) || strings.Contains(u.FullName, query) {
			out = append(out, entity.UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName})
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Stats(_ context.Context, userID int64) (*entity.UserStats, error) {
	if _, ok := f.users[userID]; !ok {
		return nil, repository.ErrNotFound
	}
	return &entity.UserStats{}, nil
}

func newUserService(repo repository.UserRepository) *UserService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewUserService(repo, jwt, nil, nil, false, nil, "")
}

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	res, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret12", FullName: "Alice",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.NotEqual(t, "secret12", res.User.Password)
	assert.True(t, helpers.CompareHashAndPassword(res.User.Password, "secret12"))

	claims, err := svc.JWT.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret12"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret12"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(ctx, RegisterInput{Username: "other", Email: "a@example.com", Password: "secret12"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_ByUsernameOrEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret12"})
	require.NoError(t, err)

	for _, login := range []string{"bob", "bob@example.com"} {
		res, err := svc.Login(ctx, login, "secret12")
		require.NoError(t, err)
		assert.Equal(t, "bob", res.User.Username)
		assert.NotEmpty(t, res.Token)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret12"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "bob", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown user yields the same error as a bad password
	_, err = svc.Login(ctx, "nobody", "secret12")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_OverwritesBothFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret12", FullName: "Bob"})
	require.NoError(t, err)

	u, err := svc.UpdateProfile(ctx, res.User.ID, "Robert", "")
	require.NoError(t, err)
	assert.Equal(t, "Robert", u.FullName)
	assert.Empty(t, u.Bio)
}

func TestSearch_FallsBackToSQLWithoutES(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "carol", Email: "c@example.com", Password: "secret12", FullName: "Carol"})
	require.NoError(t, err)

	got, err := svc.Search(ctx, "car", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "carol", got[0].Username)
}
