package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that the requested route or record does not exist.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that the request body or a path parameter is invalid.
	ErrBadParameter = "bad_parameter"
)

// MyError is the error type of the discovery service. Code selects the HTTP status, Message is shown to the
// caller and Inner is only logged.
type MyError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Inner   error  `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// NewInternalServerError keeps inner when it already is a MyError, so a store failure deep in an adapter
// reaches the client with its original code.
func NewInternalServerError(message string, inner error) *MyError {
	if myInner := ToMyError(inner); myInner != nil {
		return myInner
	}
	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	if myInner := ToMyError(inner); myInner != nil {
		return myInner
	}
	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	if myInner := ToMyError(inner); myInner != nil {
		return myInner
	}
	return NewMyError(ErrBadParameter, message, inner)
}

// NewStoreError wraps a storage failure of op ("register", "deregister", "list") as internal_server_error.
func NewStoreError(backend, op string, err error) *MyError {
	return NewInternalServerError(
		fmt.Sprintf("%s store %s failed", backend, op),
		fmt.Errorf("%s store %s: %w", backend, op, err),
	)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns the first MyError in err's chain, or nil.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	if myErr := ToMyError(err); myErr != nil {
		return myErr.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	return ToMyErrorCode(err) == code && code != ""
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}
