package httpx

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/sunnysingha911/AI-powered-job/internal/apperror"
	"github.com/sunnysingha911/AI-powered-job/internal/repository"
	"github.com/sunnysingha911/AI-powered-job/internal/token"
)

// respondError is the single funnel every handler and middleware failure
// passes through. No other code in this package formats an error response.
func (r *Router) respondError(w http.ResponseWriter, req *http.Request, err error) {
	status, body := r.translate(err)
	r.logger.Error("request failed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", status,
		"error", err.Error(),
	)
	writeJSON(w, status, body)
}

// translate maps an error onto the status and body it must surface with. It
// is a pure function of the error value and the development flag.
func (r *Router) translate(err error) (int, errorResponse) {
	resp := errorResponse{Success: false}

	var appErr *apperror.Error
	var dupErr *repository.DuplicateError
	var storeErr *repository.StoreError

	switch {
	case errors.As(err, &appErr):
		resp.Message = appErr.Message
		resp.Errors = appErr.Fields
		return appErr.Status, resp
	case errors.As(err, &dupErr):
		resp.Message = "Duplicate field value: " + dupErr.Field
		return http.StatusBadRequest, resp
	case errors.Is(err, repository.ErrInvalidReference):
		resp.Message = "Invalid input data"
		return http.StatusBadRequest, resp
	case errors.Is(err, repository.ErrNotFound):
		resp.Message = "Record not found"
		return http.StatusBadRequest, resp
	case errors.As(err, &storeErr):
		resp.Message = "Database error occurred"
		return http.StatusBadRequest, resp
	case errors.Is(err, token.ErrExpired):
		resp.Message = "Token expired"
		return http.StatusUnauthorized, resp
	case errors.Is(err, token.ErrInvalid):
		resp.Message = "Invalid token"
		return http.StatusUnauthorized, resp
	default:
		if r.development {
			resp.Message = err.Error()
			resp.Stack = string(debug.Stack())
		} else {
			resp.Message = "Internal server error"
		}
		return http.StatusInternalServerError, resp
	}
}
