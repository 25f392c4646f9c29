// Package errors extends the standard "errors" package with wrapping helpers,
// a MultiError, prefixed (nested) errors and a human-readable formatter.
package errors

import (
	"errors"
	"fmt"
)

type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

func New(msg string) error {
	return errors.New(msg)
}

// Errorf is fmt.Errorf, the %w verb wraps the error.
func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

// Wrap returns a new error with the message, the cause is available via Unwrap.
// Unlike Errorf with %w, the cause message is not part of the new message.
func Wrap(err error, msg string) error {
	return &wrappedError{msg: msg, cause: err}
}

func Wrapf(err error, format string, a ...any) error {
	return &wrappedError{msg: fmt.Sprintf(format, a...), cause: err}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}
