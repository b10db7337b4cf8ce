package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sunnysingha911/AI-powered-job/internal/apperror"
	"github.com/sunnysingha911/AI-powered-job/internal/crypto"
	"github.com/sunnysingha911/AI-powered-job/internal/domain"
	"github.com/sunnysingha911/AI-powered-job/internal/repository"
	"github.com/sunnysingha911/AI-powered-job/internal/token"
)

type userRepoMock struct {
	createFunc     func(context.Context, *domain.User) error
	getByEmailFunc func(context.Context, string) (*domain.User, error)
	getByIDFunc    func(context.Context, string) (*domain.User, error)
}

func (m *userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *userRepoMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	testHasher = crypto.NewHasher(bcrypt.MinCost)
	testCodec  = token.NewCodec("test-secret", time.Hour)
)

func newService(repo repository.UserRepository) Service {
	return New(repo, testHasher, testCodec, newLogger())
}

func TestRegisterNewEmail(t *testing.T) {
	var stored *domain.User
	repo := &userRepoMock{
		createFunc: func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}
	svc := newService(repo)

	user, signed, err := svc.Register(context.Background(), RegisterInput{
		Email:     "a@b.com",
		Password:  "Test1234",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, "Ada", user.FirstName)

	// The stored credential is a digest, never the plaintext.
	require.NotEqual(t, "Test1234", stored.PasswordHash)
	require.True(t, testHasher.Verify("Test1234", stored.PasswordHash))

	claims, err := testCodec.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
}

func TestRegisterExistingEmailConflict(t *testing.T) {
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: "a@b.com"}, nil
		},
	}
	svc := newService(repo)

	for _, password := range []string{"Test1234", "Another9x"} {
		_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: password})
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 409, appErr.Status)
		require.Equal(t, "User already exists with this email", appErr.Message)
	}
}

func TestRegisterRaceSurfacesDuplicate(t *testing.T) {
	// The existence check passes but the insert loses the race; the store
	// constraint error must pass through untouched for translation.
	repo := &userRepoMock{
		createFunc: func(_ context.Context, _ *domain.User) error {
			return &repository.DuplicateError{Field: "email"}
		},
	}
	svc := newService(repo)

	_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "Test1234"})
	var dupErr *repository.DuplicateError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, "email", dupErr.Field)
}

func TestLoginEnumerationIndistinguishable(t *testing.T) {
	hash, err := testHasher.Hash("Correct1")
	require.NoError(t, err)

	known := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			if email == "a@b.com" {
				return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := newService(known)

	_, _, unknownEmailErr := svc.Login(context.Background(), "nobody@b.com", "Correct1")
	_, _, wrongPasswordErr := svc.Login(context.Background(), "a@b.com", "Wrong1234")

	require.Error(t, unknownEmailErr)
	require.Equal(t, unknownEmailErr, wrongPasswordErr)

	var appErr *apperror.Error
	require.ErrorAs(t, unknownEmailErr, &appErr)
	require.Equal(t, 401, appErr.Status)
	require.Equal(t, "Invalid credentials", appErr.Message)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := testHasher.Hash("Correct1")
	require.NoError(t, err)
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newService(repo)

	user, signed, err := svc.Login(context.Background(), "a@b.com", "Correct1")
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)

	claims, err := testCodec.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Email)
}

func TestProfileStaleIdentity(t *testing.T) {
	svc := newService(&userRepoMock{})

	_, err := svc.Profile(context.Background(), "gone")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 401, appErr.Status)
	require.Equal(t, "User not found", appErr.Message)
}

func TestProfileSuccess(t *testing.T) {
	repo := &userRepoMock{
		getByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "a@b.com", Phone: "555-0100"}, nil
		},
	}
	svc := newService(repo)

	user, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "555-0100", user.Phone)
}
