package usecase

import (
	"context"
	"errors"
	"strings"

	"loomconnect/internal/domain/profile"
	"loomconnect/internal/domain/user"
	"loomconnect/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	users    user.Repository
	profiles profile.Repository
	jwt      jwt.Service
}

func NewAuthUsecase(users user.Repository, profiles profile.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, profiles: profiles, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, "", "", ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, "", "", ErrInvalidInput
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	if exists {
		return user.User{}, "", "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}

	usr := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := u.users.Create(ctx, usr); err != nil {
		exists, exErr := u.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, "", "", ErrEmailAlreadyRegistered
		}
		return user.User{}, "", "", ErrInternal
	}

	// Every account gets an empty, private profile. It becomes a match
	// candidate only after onboarding completes.
	p := profile.Profile{
		ID:          uuid.New(),
		UserID:      usr.ID,
		DisplayName: strings.TrimSpace(in.DisplayName),
		IsPublic:    true,
	}
	if err := u.profiles.Create(ctx, p); err != nil {
		return user.User{}, "", "", ErrInternal
	}

	created, err := u.users.GetByID(ctx, usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	created.PasswordHash = ""

	access, refresh, err := u.issueTokens(created.ID, created.Email)
	if err != nil {
		return user.User{}, "", "", err
	}
	return created, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (user.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, "", "", ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", "", ErrInvalidCredentials
		}
		return user.User{}, "", "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", "", ErrInvalidCredentials
	}
	usr.PasswordHash = ""

	access, refresh, err := u.issueTokens(usr.ID, usr.Email)
	if err != nil {
		return user.User{}, "", "", err
	}
	return usr, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}

	return u.issueTokens(usr.ID, usr.Email)
}

func (u *Auth) issueTokens(id uuid.UUID, email string) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(id, email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(id)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func isValidPassword(password string) bool {
	return len(password) >= 8
}
