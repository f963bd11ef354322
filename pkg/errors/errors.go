package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error with HTTP awareness. Status carries
// the backend response code for request failures and a conventional code for
// purely local failures.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrUnauthenticated = New("UNAUTHENTICATED", http.StatusUnauthorized, "no session credential present")
	ErrRequest         = New("REQUEST_FAILED", 0, "request failed")
	ErrNetwork         = New("NETWORK_ERROR", 0, "network failure")
	ErrForbidden       = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrBusy            = New("OPERATION_PENDING", http.StatusConflict, "another operation is still pending")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// Request builds a REQUEST_FAILED error carrying the backend status and the
// backend-supplied message verbatim.
func Request(status int, message string) *Error {
	if message == "" {
		message = "error en la petición"
	}
	return New(ErrRequest.Code, status, message)
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the given predefined code.
func Is(err error, sentinel *Error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return sentinel != nil && e.Code == sentinel.Code
}
