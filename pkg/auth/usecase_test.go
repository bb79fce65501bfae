package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepo struct {
	byEmail map[string]User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: make(map[string]User)}
}

func (m *memoryUserRepo) Create(_ context.Context, user User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, user User) (string, error) {
	return "token-" + user.ID.String(), nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	reg, err := svc.Register(context.Background(), "ivan@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reg.User.PasswordHash), []byte("secret")))

	login, err := svc.Login(context.Background(), "ivan@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "ivan@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ivan@example.com", "other")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "ivan@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ivan@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), staticTokens{})
	_, err := svc.Register(context.Background(), "", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(context.Background(), "ivan@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
