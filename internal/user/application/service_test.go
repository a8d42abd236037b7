package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pagebound/bookstore/internal/user/domain"
)

type memoryUserRepo struct {
	byEmail map[string]domain.User
	next    int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailTaken
	}
	r.next++
	u.ID = r.next
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *memoryUserRepo) ByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func newUserService(repo *memoryUserRepo) *Service {
	return NewService(slog.New(slog.DiscardHandler), repo)
}

func TestRegisterHashesPasswordAndLowercasesEmail(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newUserService(repo)

	u, err := svc.Register(context.Background(), "  Ann@Example.COM ", "s3cret", "Ann", "Example")
	require.NoError(t, err)

	assert.Equal(t, "ann@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	assert.Equal(t, "USER", u.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(newMemoryUserRepo())

	_, err := svc.Register(context.Background(), "ann@example.com", "pw", "", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ANN@example.com", "pw2", "", "")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := newUserService(newMemoryUserRepo())

	_, err := svc.Register(context.Background(), "", "pw", "", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Register(context.Background(), "ann@example.com", "", "", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLogin(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), "ann@example.com", "s3cret", "Ann", "")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "Ann@Example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)

	_, err = svc.Login(context.Background(), "ann@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
