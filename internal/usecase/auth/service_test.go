package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skill-swap/internal/domain/user"
)

type memUsers struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]user.User
	createErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:    "  Alice@Example.com ",
		Password: "password123",
		Name:     "Alice",
		Username: "alice",
	}
}

func TestRegister(t *testing.T) {
	repo := newMemUsers()
	svc := NewService(repo).WithCost(bcrypt.MinCost)

	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, u.IsPublic)
	assert.Empty(t, u.PasswordHash)

	stored := repo.byID[u.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc := NewService(newMemUsers()).WithCost(bcrypt.MinCost)

	cases := map[string]func(*RegisterInput){
		"short password": func(in *RegisterInput) { in.Password = "short" },
		"long password":  func(in *RegisterInput) { in.Password = strings.Repeat("x", 80) },
		"73 byte utf8":   func(in *RegisterInput) { in.Password = strings.Repeat("é", 36) + "x" },
		"blank email":    func(in *RegisterInput) { in.Email = "  " },
		"blank username": func(in *RegisterInput) { in.Username = "" },
		"blank name":     func(in *RegisterInput) { in.Name = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterAcceptsPasswordAtBcryptLimit(t *testing.T) {
	svc := NewService(newMemUsers()).WithCost(bcrypt.MinCost)

	in := validInput()
	in.Password = strings.Repeat("x", 72)
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
}

func TestRegisterDuplicates(t *testing.T) {
	svc := NewService(newMemUsers()).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validInput())
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	in := validInput()
	in.Email = "other@example.com"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterCreateFailure(t *testing.T) {
	repo := newMemUsers()
	repo.createErr = errors.New("boom")
	svc := NewService(repo).WithCost(bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLogin(t *testing.T) {
	svc := NewService(newMemUsers()).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	u, err := svc.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
