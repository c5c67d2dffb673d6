// Package apierror is the error model shared by the registry, catalog and gateway services.
package apierror

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that nothing matched the lookup. For the registry it is
	// the normal "no live instance" outcome, not a fault.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrServiceUnavailable means that a dependency resolved through the registry has no live instance.
	ErrServiceUnavailable = "service_unavailable"
	// ErrBadGateway means that an upstream (registry or backend) could not be reached.
	ErrBadGateway = "bad_gateway"
	// ErrRouteNotFound means that no HTTP route matched the request.
	ErrRouteNotFound = "route_not_found"
	// ErrTooManyRequests means that the request was rejected by the rate limiter.
	ErrTooManyRequests = "too_many_requests"
)

// MyError is an API error with a machine-readable code.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// NewInternalServerError keeps the code of inner when inner is already a MyError.
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

// NewServiceUnavailableError does not inherit the inner code: a not-found from the
// registry becomes unavailable for the gateway caller.
func NewServiceUnavailableError(message string, inner error) *MyError {
	return NewMyError(ErrServiceUnavailable, message, inner)
}

func NewBadGatewayError(message string, inner error) *MyError {
	return NewMyError(ErrBadGateway, message, inner)
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

// ToMyError returns the first MyError in the chain of err, or nil.
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
	if myErr := ToMyError(err); myErr != nil {
		return myErr.Code == code
	}
	return false
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

func IsServiceUnavailableError(err error) bool {
	return IsMyError(err, ErrServiceUnavailable)
}

func IsBadGatewayError(err error) bool {
	return IsMyError(err, ErrBadGateway)
}
