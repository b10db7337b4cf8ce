package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sunnysingha911/AI-powered-job/internal/apperror"
	"github.com/sunnysingha911/AI-powered-job/internal/domain"
	"github.com/sunnysingha911/AI-powered-job/internal/repository"
)

type identityContextKey struct{}

// requireAuth rejects the request unless it carries a valid bearer token that
// resolves to a live user. On success the identity is attached to the request
// context for downstream handlers.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, err := r.resolveIdentity(req)
		if err != nil {
			r.respondError(w, req, err)
			return
		}
		next(w, req.WithContext(ctx))
	}
}

// optionalAuth attaches an identity when the request carries a valid token
// and otherwise lets the request through untouched. It never writes a
// response.
func (r *Router) optionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, err := r.resolveIdentity(req)
		if err != nil {
			r.logger.Debug("optional auth skipped", "path", req.URL.Path, "error", err)
			next(w, req)
			return
		}
		next(w, req.WithContext(ctx))
	}
}

// resolveIdentity runs the per-request identity state machine: extract the
// bearer token, verify it, then confirm the user still exists. The lookup
// only happens after verification succeeds.
func (r *Router) resolveIdentity(req *http.Request) (context.Context, error) {
	raw, ok := bearerToken(req.Header.Get("Authorization"))
	if !ok {
		return nil, apperror.Unauthorized("No token provided")
	}
	claims, err := r.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	user, err := r.users.GetUserByID(req.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, err
	}
	identity := domain.Identity{ID: user.ID, Email: user.Email}
	return context.WithValue(req.Context(), identityContextKey{}, identity), nil
}

// bearerToken extracts the token from an Authorization header. Any scheme
// other than Bearer, or a malformed header, reads the same as no header.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// IdentityFromContext returns the authenticated identity, when present.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(domain.Identity)
	return identity, ok
}
