// Package apperror defines the closed set of failure kinds business logic is
// allowed to surface. Each error carries the HTTP status it should be
// reported with; translation to a response body happens in one place, in the
// HTTP layer.
package apperror

import "net/http"

// FieldError describes a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an intentional application failure.
type Error struct {
	Status  int
	Message string
	// Fields is non-nil only for validation failures; order matches the
	// order violations were discovered in.
	Fields []FieldError
}

func (e *Error) Error() string { return e.Message }

// New builds an Error with an explicit status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Conflict reports a duplicate-resource failure.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Unauthorized reports an authentication failure. Messages are deliberately
// coarse so callers cannot probe which check failed.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// BadRequest reports malformed client input that never reached validation.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Validation reports schema violations with per-field detail.
func Validation(fields []FieldError) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Fields:  fields,
	}
}
