// Package auth orchestrates credential registration, login and profile
// retrieval over the user store, the password hasher and the token codec.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sunnysingha911/AI-powered-job/internal/apperror"
	"github.com/sunnysingha911/AI-powered-job/internal/crypto"
	"github.com/sunnysingha911/AI-powered-job/internal/domain"
	"github.com/sunnysingha911/AI-powered-job/internal/repository"
	"github.com/sunnysingha911/AI-powered-job/internal/token"
)

// Service handles authentication workflows.
type Service struct {
	users  repository.UserRepository
	hasher crypto.Hasher
	tokens token.Codec
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, hasher crypto.Hasher, tokens token.Codec, logger *slog.Logger) Service {
	return Service{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// RegisterInput carries the fields accepted at registration. FirstName and
// LastName are optional.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a user and issues a token. The existence check is a fast
// path for a clean Conflict message; the unique index on email is the actual
// duplicate guard, and a concurrent registration that loses the race surfaces
// from CreateUser as a repository.DuplicateError.
func (s Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	_, err := s.users.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, "", apperror.Conflict("User already exists with this email")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}
	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, signed, nil
}

// Login verifies credentials and issues a token. An unknown email and a wrong
// password return the same failure so callers cannot enumerate accounts.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperror.Unauthorized("Invalid credentials")
		}
		return nil, "", err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", apperror.Unauthorized("Invalid credentials")
	}
	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, signed, nil
}

// Profile loads the user behind an authenticated request. A token whose user
// has since been deleted reads as an authentication failure, not a lookup
// failure.
func (s Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, err
	}
	return user, nil
}
