package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/intake-service/internal/auth"
	"github.com/spec-kit/intake-service/internal/config"
	"github.com/spec-kit/intake-service/internal/repository"
	apperrors "github.com/spec-kit/intake-service/pkg/util"
)

// LoginResult carries the issued credential back to the caller.
type LoginResult struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// AuthService coordinates the login flow.
type AuthService struct {
	users   repository.UserRepository
	codec   *auth.TokenCodec
	hashKey string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:   users,
		codec:   auth.NewTokenCodec(cfg.TokenTTL()),
		hashKey: cfg.HashKey,
	}
}

// Login authenticates a user and issues a bearer token. It never mutates
// the stores; repeated calls with valid credentials issue fresh tokens.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewMissingCredentials()
	}

	user, err := s.users.FindByCredentials(ctx, username, auth.HashPassword(password, s.hashKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewStorageError("Error checking credentials", err)
	}

	token, expiresAt, err := s.codec.Issue(user.Username)
	if err != nil {
		return nil, apperrors.NewServerError(err)
	}

	return &LoginResult{Token: token, Username: user.Username, ExpiresAt: expiresAt}, nil
}

// TokenCodec exposes the codec so the transport layer can resolve bearer
// subjects on submit.
func (s *AuthService) TokenCodec() *auth.TokenCodec {
	return s.codec
}
