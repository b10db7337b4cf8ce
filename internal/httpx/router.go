// Package httpx wires the HTTP surface to the auth service: routing,
// payload validation, identity middleware and the error translation funnel.
package httpx

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sunnysingha911/AI-powered-job/internal/apperror"
	"github.com/sunnysingha911/AI-powered-job/internal/config"
	"github.com/sunnysingha911/AI-powered-job/internal/repository"
	"github.com/sunnysingha911/AI-powered-job/internal/service/auth"
	"github.com/sunnysingha911/AI-powered-job/internal/token"
)

const healthCheckTimeout = 2 * time.Second

// Router wires HTTP endpoints to services.
type Router struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	auth        auth.Service
	users       repository.UserRepository
	tokens      token.Codec
	validate    *validator.Validate
	environment string
	development bool
	dbHealth    func(context.Context) error
}

// NewRouter assembles routes with dependencies. dbHealth probes store
// connectivity for /health and may be nil in tests.
func NewRouter(logger *slog.Logger, authSvc auth.Service, users repository.UserRepository, tokens token.Codec, cfg config.Config, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:         http.NewServeMux(),
		logger:      logger,
		auth:        authSvc,
		users:       users,
		tokens:      tokens,
		validate:    newValidator(),
		environment: cfg.Environment,
		development: cfg.IsDevelopment(),
		dbHealth:    dbHealth,
	}
	r.register()
	return r
}

// ServeHTTP delegates to the underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("/health", r.audit(r.handleHealth))
	r.mux.HandleFunc("/api/auth/register", r.audit(r.handleRegister))
	r.mux.HandleFunc("/api/auth/login", r.audit(r.handleLogin))
	r.mux.HandleFunc("/api/auth/me", r.audit(r.requireAuth(r.handleMe)))

	// Domains that are not built yet. Routed so clients get a stable
	// contract instead of a bare 404. Job listings stay browseable without
	// an account; everything else requires one.
	for _, route := range []string{"/api/jobs", "/api/jobs/"} {
		r.mux.HandleFunc(route, r.audit(r.optionalAuth(r.handleNotImplemented)))
	}
	for _, route := range []string{
		"/api/resumes", "/api/resumes/",
		"/api/applications", "/api/applications/",
		"/api/analysis/",
		"/api/notifications",
	} {
		r.mux.HandleFunc(route, r.audit(r.requireAuth(r.handleNotImplemented)))
	}
	r.mux.HandleFunc("/api/", r.audit(r.handleUnknownRoute))
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req)
		return
	}
	payload, err := decodeValid[registerRequest](r.validate, req)
	if err != nil {
		r.respondError(w, req, err)
		return
	}
	user, signed, err := r.auth.Register(req.Context(), auth.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		r.respondError(w, req, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "User registered successfully", map[string]any{
		"user":  user.Public(),
		"token": signed,
	})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req)
		return
	}
	payload, err := decodeValid[loginRequest](r.validate, req)
	if err != nil {
		r.respondError(w, req, err)
		return
	}
	user, signed, err := r.auth.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		r.respondError(w, req, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Login successful", map[string]any{
		"user":  user.Public(),
		"token": signed,
	})
}

func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w, req)
		return
	}
	identity, ok := IdentityFromContext(req.Context())
	if !ok {
		r.respondError(w, req, apperror.Unauthorized("No token provided"))
		return
	}
	user, err := r.auth.Profile(req.Context(), identity.ID)
	if err != nil {
		r.respondError(w, req, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", user.Public())
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w, req)
		return
	}
	status, database, code := "ok", "connected", http.StatusOK
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			r.logger.Warn("health probe failed", "error", err)
			status, database, code = "unavailable", "disconnected", http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, map[string]any{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": r.environment,
		"database":    database,
	})
}

func (r *Router) handleNotImplemented(w http.ResponseWriter, req *http.Request) {
	r.respondError(w, req, apperror.New(http.StatusNotImplemented, "Not implemented"))
}

func (r *Router) handleUnknownRoute(w http.ResponseWriter, req *http.Request) {
	r.respondError(w, req, apperror.New(http.StatusNotFound, "Route not found"))
}

func (r *Router) methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	r.respondError(w, req, apperror.New(http.StatusMethodNotAllowed, "Method not allowed"))
}

// registerRequest is the registration payload contract.
type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`
}

// loginRequest is the login payload contract. The password policy is not
// re-checked here; any non-empty password is compared against the stored
// hash.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// audit logs every request with its final status.
func (r *Router) audit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if ip := clientIP(req); ip != "" {
			fields = append(fields, "ip", ip)
		}
		r.logger.Info("request", fields...)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func clientIP(req *http.Request) string {
	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}
