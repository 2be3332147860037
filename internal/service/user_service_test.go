package service

import (
	"context"
	"testing"

	"github.com/Bartuster/todo-backend/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byName map[string]domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: map[string]domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	u, ok := r.byName[username]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, username, passwordHash string) (domain.User, error) {
	if _, ok := r.byName[username]; ok {
		return domain.User{}, &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	u := domain.User{ID: r.nextID, Username: username, PasswordHash: passwordHash}
	r.nextID++
	r.byName[username] = u
	return u, nil
}

func TestRegisterAndValidate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "hunter2", u.PasswordHash)

	got, err := svc.ValidateCredentials(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "first")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "second")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// the original account must be intact
	require.Len(t, repo.byName, 1)
	_, err = svc.ValidateCredentials(ctx, "alice", "first")
	assert.NoError(t, err)
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// An unknown username and a wrong password must fail identically.
func TestValidateCredentialsUniformFailure(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, unknownErr := svc.ValidateCredentials(ctx, "nobody", "hunter2")
	_, wrongErr := svc.ValidateCredentials(ctx, "alice", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestRegisterHashesDiffer(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	a, err := svc.Register(ctx, "alice", "same-password")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "bob", "same-password")
	require.NoError(t, err)

	// bcrypt salts per call, so equal passwords never share a hash
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}
