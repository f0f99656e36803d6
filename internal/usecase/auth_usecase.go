package usecase

import (
	"context"
	"errors"

	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/jwt"
	ucauth "skill-swap/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, TokenPair, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(authSvc *ucauth.Service, users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: authSvc, users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, TokenPair, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	pair, err := u.issue(usr)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return usr, pair, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, TokenPair, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	pair, err := u.issue(usr)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return usr, pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}

	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Username)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
