package repository

import (
	"context"

	"github.com/sunnysingha911/AI-powered-job/internal/domain"
)

// UserRepository persists users. The auth core depends only on the email
// uniqueness guarantee and point lookups by id and email; the storage engine
// behind it is interchangeable.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
