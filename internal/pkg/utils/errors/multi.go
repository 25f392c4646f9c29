package errors

import (
	"sync"
)

type MultiError interface {
	error
	Len() int
	Unwrap() []error
	WrappedErrors() []error
	ErrorOrNil() error
	Append(errs ...error)
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
}

type multiErrorGetter interface {
	WrappedErrors() []error
}

type multiError struct {
	lock   *sync.Mutex
	errors []error
}

func NewMultiError() MultiError {
	return &multiError{lock: &sync.Mutex{}}
}

func (e *multiError) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.errors)
}

func (e *multiError) Error() string {
	return Format(e)
}

func (e *multiError) Unwrap() []error {
	return e.WrappedErrors()
}

func (e *multiError) WrappedErrors() []error {
	e.lock.Lock()
	defer e.lock.Unlock()
	out := make([]error, len(e.errors))
	copy(out, e.errors)
	return out
}

// ErrorOrNil returns nil if there is no error, otherwise it returns the MultiError.
func (e *multiError) ErrorOrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

// Append errors, nested MultiErrors are flattened, nil errors are skipped.
func (e *multiError) Append(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		if v, ok := err.(*multiError); ok { // nolint: errorlint
			e.Append(v.WrappedErrors()...)
			continue
		}
		e.lock.Lock()
		e.errors = append(e.errors, err)
		e.lock.Unlock()
	}
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	if err != nil {
		e.Append(PrefixError(err, prefix))
	}
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	if err != nil {
		e.Append(PrefixErrorf(err, format, a...))
	}
}
