// internal/pkg/apperr/errors.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel error kinds. Every failure surfaced by a service wraps exactly one
// of these so handlers can map it to an HTTP status without string matching.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAuth            = errors.New("authentication failed")
	ErrConflict        = errors.New("conflict")
)

// Error carries a user-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is makes errors.Is(err, apperr.ErrNotFound) work across wrapping.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a not-found error with a user-facing message.
func NotFound(message string, err error) error {
	return &Error{Kind: ErrNotFound, Message: message, Err: err}
}

// InvalidState creates an invalid-state error with a user-facing message.
func InvalidState(message string, err error) error {
	return &Error{Kind: ErrInvalidState, Message: message, Err: err}
}

// InvalidArgument creates an invalid-argument error with a user-facing message.
func InvalidArgument(message string, err error) error {
	return &Error{Kind: ErrInvalidArgument, Message: message, Err: err}
}

// Auth creates an authentication error with a user-facing message.
func Auth(message string, err error) error {
	return &Error{Kind: ErrAuth, Message: message, Err: err}
}

// Conflict creates a conflict error with a user-facing message.
func Conflict(message string, err error) error {
	return &Error{Kind: ErrConflict, Message: message, Err: err}
}

// Internal wraps an infrastructure failure. It intentionally has no sentinel
// kind; handlers treat anything unrecognized as a 500.
func Internal(message string, err error) error {
	return &Error{Message: message, Err: err}
}

// HTTPStatus maps an error to the HTTP status code the taxonomy prescribes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for an error, hiding internals
// behind a generic message for unclassified failures.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != nil {
		return appErr.Message
	}
	return "Internal server error"
}
