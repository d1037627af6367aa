package operations

import (
	"errors"

	"attendancehub/internal/store"
)

const (
	ErrEmailRequired      = "email_required"
	ErrUserNotFound       = "user_not_found"
	ErrInvalidCredentials = "invalid_credentials"
	ErrInvalidPayload     = "invalid_payload"
	ErrNotFound           = "not_found"
	ErrConflict           = "conflict"
	ErrAlreadyDecided     = "already_decided"
	ErrServerError        = "server_error"
)

// Error carries the client-facing code. Err, when set, is the underlying
// cause and is only ever logged.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code extracts the error code, treating anything uncoded as a server error.
func Code(err error) string {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Code
	}
	return ErrServerError
}

// storeError classifies a store failure by its sentinel.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return &Error{Code: ErrNotFound, Err: err}
	case errors.Is(err, store.ErrConflict):
		return &Error{Code: ErrConflict, Err: err}
	default:
		return &Error{Code: ErrServerError, Err: err}
	}
}
