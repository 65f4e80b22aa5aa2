// Package apperr defines the error taxonomy shared by services and
// handlers. Services wrap one of the sentinel kinds; the HTTP layer maps
// the kind to a status code without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Error carries a caller-safe message plus the taxonomy kind. Optional
// Details holds per-field validation hints.
type Error struct {
	Kind    error
	Message string
	Details map[string]string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func ValidationFields(msg string, fields map[string]string) error {
	return &Error{Kind: ErrValidation, Message: msg, Details: fields}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticatedf(format string, args ...any) error {
	return &Error{Kind: ErrUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

// Status returns the HTTP status for err, or 500 when the error is not
// part of the taxonomy.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrUnauthenticated):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	}
	return 500
}
