package html2toml

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	EINPUT     = "input"
	EOUTPUT    = "output"
	ESERIALIZE = "serialize"
	EINVALID   = "invalid"
	EINTERNAL  = "internal"
)

// Error represents a conversion failure tagged with one of the E* codes.
type Error struct {
	Code    string
	Message string

	err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("html2toml: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the error built by Errorf. Causes wrapped with %w stay
// reachable through it.
func (e *Error) Unwrap() error {
	return e.err
}

// Errorf returns an Error with the given code. Any %w verbs in format are
// honored so the causes stay reachable through errors.Is and errors.As.
func Errorf(code string, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Code: code, Message: err.Error(), err: err}
}

// ErrorCode returns the code of err. It returns EINTERNAL for errors that
// were not created by this package and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the human readable message of err.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
