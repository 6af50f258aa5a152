package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrAuth       = errors.New("authentication failed")
	ErrConflict   = errors.New("conflict")
)

// Error is a failure the caller is expected to report back to the client.
type Error struct {
	Kind error
	Msg  string

	problems []error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Problems lists the individual failures of a validation error.
func (e *Error) Problems() []string {
	out := make([]string, 0, len(e.problems))
	for _, p := range e.problems {
		out = append(out, p.Error())
	}
	return out
}

// NewError builds an error of the given kind.
func NewError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) error {
	return NewError(ErrValidation, format, args...)
}

func notFound(format string, args ...any) error {
	return NewError(ErrNotFound, format, args...)
}

func forbidden(format string, args ...any) error {
	return NewError(ErrForbidden, format, args...)
}

func authError(format string, args ...any) error {
	return NewError(ErrAuth, format, args...)
}

func conflict(format string, args ...any) error {
	return NewError(ErrConflict, format, args...)
}
