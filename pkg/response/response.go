package response

import (
	"errors"
)

type Error struct {
	Code  int
	Err   error
	Cause error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

// Wrap attaches cause to a declared response error so callers can still match
// the declared error with errors.Is while logs keep the underlying reason.
func Wrap(declared error, cause error) error {
	var e *Error
	if !errors.As(declared, &e) {
		return declared
	}
	return &Error{Code: e.Code, Err: e.Err, Cause: cause}
}
