package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skill-swap/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects anything longer.
	maxPasswordBytes = 72
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Username string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	if email == "" || username == "" || name == "" {
		return user.User{}, ErrInvalidInput
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLength || len(in.Password) > maxPasswordBytes {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if taken {
		return user.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Username:     username,
		IsPublic:     true,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		// Lost a race with a concurrent registration.
		if exists, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		if taken, exErr := s.users.ExistsByUsername(ctx, username); exErr == nil && taken {
			return user.User{}, ErrUsernameTaken
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
