package errors

// NestedError is a main error followed by a list of sub errors, for example:
//
//	invalid metadata of field "Account.SubStatus__c":
//	- valueSettings[0].valueName is a required field
//	- valueSettings[1].controllingFieldValue must contain at least 1 item.
type NestedError interface {
	Error() string
	Unwrap() []error
	MainError() error
	WrappedErrors() []error
}

type nestedErrorGetter interface {
	MainError() error
	WrappedErrors() []error
}

type nestedError struct {
	main      error
	subErrors MultiError
}

func (e *nestedError) Error() string {
	return Format(e)
}

func (e *nestedError) Unwrap() []error {
	return append([]error{e.main}, e.subErrors.WrappedErrors()...)
}

func (e *nestedError) MainError() error {
	return e.main
}

func (e *nestedError) WrappedErrors() []error {
	return e.subErrors.WrappedErrors()
}

func PrefixError(err error, prefix string) error {
	return NewNestedError(New(prefix), err)
}

func PrefixErrorf(err error, format string, a ...any) error {
	return NewNestedError(Errorf(format, a...), err)
}

func NewNestedError(main error, subErrs ...error) NestedError {
	if main == nil {
		panic("error cannot be nil")
	}

	subMultiError := NewMultiError()
	subMultiError.Append(subErrs...)
	return &nestedError{main: main, subErrors: subMultiError}
}
