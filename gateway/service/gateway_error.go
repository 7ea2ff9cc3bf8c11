package service

import (
	"context"
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that the registry has no such entry.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrServiceUnavailable means that the service type has no registered instance.
	ErrServiceUnavailable = "no_instances_available"
	// ErrServicesDown means that every instance of the service type failed.
	ErrServicesDown = "all_instances_down"
	// ErrGatewayTimeout means that the caller's deadline ran out or the request was cancelled mid dispatch.
	ErrGatewayTimeout = "gateway_timeout"
	// ErrOverloaded means that the gateway is at its in-flight request cap.
	ErrOverloaded = "overloaded"
)

const msgAllServicesDown = "All services are down"

// GatewayError is an error the gateway itself answers with (as opposed to a backend response passed through).
type GatewayError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewGatewayError creates a new GatewayError.
func NewGatewayError(code string, message string, inner error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewBadParameterError(message string, inner error) *GatewayError {
	return NewGatewayError(ErrBadParameter, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *GatewayError {
	return NewGatewayError(ErrEntityNotFound, message, inner)
}

func (e GatewayError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e GatewayError) Unwrap() error {
	return e.Inner
}

// ToGatewayError returns the GatewayError in err's chain. A *DispatchError is translated:
// ErrNoInstancesAvailable → no_instances_available, ErrAllInstancesDown → all_instances_down ("All services are
// down"), context cancellation/deadline → gateway_timeout. Returns nil for anything else.
func ToGatewayError(err error) *GatewayError {
	var e *GatewayError
	if errors.As(err, &e) {
		return e
	}
	var de *DispatchError
	if !errors.As(err, &de) {
		return nil
	}
	switch {
	case errors.Is(de, ErrNoInstancesAvailable):
		return NewGatewayError(ErrServiceUnavailable, "No instances available for "+string(de.Service), err)
	case errors.Is(de, ErrAllInstancesDown):
		return NewGatewayError(ErrServicesDown, msgAllServicesDown, err)
	case errors.Is(de, context.DeadlineExceeded), errors.Is(de, context.Canceled):
		return NewGatewayError(ErrGatewayTimeout, "request cancelled before a backend answered", err)
	default:
		return NewGatewayError(ErrInternalServerError, "an internal server error has occurred", err)
	}
}

// IsGatewayError reports whether err translates to a GatewayError with the given code.
func IsGatewayError(err error, code string) bool {
	ge := ToGatewayError(err)
	return ge != nil && ge.Code == code
}
