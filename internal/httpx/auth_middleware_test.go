package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sunnysingha911/AI-powered-job/internal/domain"
	"github.com/sunnysingha911/AI-powered-job/internal/token"
)

// seedUser registers a user directly in the store and returns it with a
// freshly issued token.
func seedUser(t *testing.T, repo *memoryRepo) (*domain.User, string) {
	t.Helper()
	user := &domain.User{ID: "user-1", Email: "a@b.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	signed, err := testCodec.Issue(user.ID, user.Email)
	require.NoError(t, err)
	return user, signed
}

func expiredToken(t *testing.T) string {
	t.Helper()
	signed, err := token.NewCodec("test-secret", -time.Minute).Issue("user-1", "a@b.com")
	require.NoError(t, err)
	return signed
}

func TestRequireAuthRejections(t *testing.T) {
	router, repo := newTestRouter("test", nil)
	_, validForDeleted := seedUser(t, repo)
	repo.delete("user-1")

	probe := router.requireAuth(func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("handler must not run for rejected requests")
	})

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"no header", "", "No token provided"},
		{"blank header", "   ", "No token provided"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "No token provided"},
		{"bearer without token", "Bearer", "No token provided"},
		{"malformed token", "Bearer not.a.token", "Invalid token"},
		{"expired token", "Bearer " + expiredToken(t), "Token expired"},
		{"deleted user", "Bearer " + validForDeleted, "User not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			probe(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	router, repo := newTestRouter("test", nil)
	user, signed := seedUser(t, repo)

	var got domain.Identity
	var ok bool
	probe := router.requireAuth(func(w http.ResponseWriter, req *http.Request) {
		got, ok = IdentityFromContext(req.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	probe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	require.Equal(t, domain.Identity{ID: user.ID, Email: user.Email}, got)
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	router, repo := newTestRouter("test", nil)
	_, validForDeleted := seedUser(t, repo)
	repo.delete("user-1")

	headers := map[string]string{
		"no header":       "",
		"wrong scheme":    "Basic dXNlcjpwYXNz",
		"malformed token": "Bearer not.a.token",
		"expired token":   "Bearer " + expiredToken(t),
		"deleted user":    "Bearer " + validForDeleted,
	}
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			probe := router.optionalAuth(func(w http.ResponseWriter, req *http.Request) {
				if _, ok := IdentityFromContext(req.Context()); ok {
					t.Error("no identity expected for failed optional auth")
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			probe(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestOptionalAuthAttachesIdentityWhenValid(t *testing.T) {
	router, repo := newTestRouter("test", nil)
	user, signed := seedUser(t, repo)

	probe := router.optionalAuth(func(w http.ResponseWriter, req *http.Request) {
		identity, ok := IdentityFromContext(req.Context())
		require.True(t, ok)
		require.Equal(t, user.ID, identity.ID)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	probe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer  abc", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Basic abc", "", false},
		{"Bearer a b", "", false},
	}
	for _, tc := range cases {
		got, ok := bearerToken(tc.header)
		if ok != tc.ok || got != tc.token {
			t.Fatalf("header %q: got (%q, %v) want (%q, %v)", tc.header, got, ok, tc.token, tc.ok)
		}
	}
}
