package xerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common reusable application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict: resource already exists")
	ErrInvalidState = errors.New("invalid state transition")
	ErrInternal     = errors.New("internal server error")
	ErrRateLimited  = errors.New("too many requests")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Invalid returns ErrInvalidInput annotated with a client-facing reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type masked struct {
	sentinel error
	cause    error
}

func (m *masked) Error() string   { return m.sentinel.Error() }
func (m *masked) Unwrap() []error { return []error{m.sentinel, m.cause} }

// Mask returns an error whose text is the sentinel's alone while cause stays
// in the chain for logging.
func Mask(sentinel, cause error) error {
	return &masked{sentinel: sentinel, cause: cause}
}

// Cause returns the error hidden by Mask, or nil.
func Cause(err error) error {
	var m *masked
	if errors.As(err, &m) {
		return m.cause
	}
	return nil
}

// HTTPStatus maps an error chain to the status code handlers should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
