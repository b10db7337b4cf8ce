package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrInvalidReference indicates a write pointed at a row that does not exist.
var ErrInvalidReference = errors.New("repository: invalid reference")

// DuplicateError reports a unique-constraint violation and the field behind
// the violated constraint. Registration races land here: the constraint is
// the real duplicate guard, not the service-level existence check.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("repository: duplicate %s", e.Field)
}

// StoreError wraps any persistence failure that is not one of the classified
// kinds above. The raw diagnostic stays inside; clients only ever see a
// generic category message.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "repository: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
