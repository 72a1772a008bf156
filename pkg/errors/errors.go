// Package errors provides structured error types for pepystats.
//
// Every failure that reaches the process boundary carries a [Code] so the
// CLI can tell an authentication problem apart from a generic HTTP failure,
// a timeout, an undecodable response, or bad user input.
//
// # Error Codes
//
//   - UNAUTHORIZED: the API answered 401; the user has to supply a key
//   - HTTP_ERROR / NOT_FOUND: any other status >= 400, status preserved
//   - TIMEOUT: the request exceeded its fixed time bound
//   - DECODE_ERROR: the body was not the JSON we expected
//   - INVALID_ARGUMENT: malformed CLI input or configuration
//   - NETWORK_ERROR: transport failures other than timeouts
//
// # Usage
//
//	err := errors.HTTPStatus(502)
//	if errors.Is(err, errors.ErrCodeHTTP) {
//	    // status is available via errors.Status(err)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure categories the client can surface.
const (
	ErrCodeUnauthorized    Code = "UNAUTHORIZED"
	ErrCodeHTTP            Code = "HTTP_ERROR"
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeTimeout         Code = "TIMEOUT"
	ErrCodeDecode          Code = "DECODE_ERROR"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeNetwork         Code = "NETWORK_ERROR"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Status  int    // HTTP status code, zero when not an HTTP failure
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Unauthorized reports a 401 from the stats API.
func Unauthorized() *Error {
	return &Error{
		Code:    ErrCodeUnauthorized,
		Message: "unauthorized (401) from pepy.tech: set PEPY_API_KEY or pass --api-key",
		Status:  401,
	}
}

// HTTPStatus reports a non-401 status >= 400. A 404 gets its own code so
// callers can say "no such project" without inspecting the status.
func HTTPStatus(status int) *Error {
	code := ErrCodeHTTP
	msg := fmt.Sprintf("pepy.tech returned status %d", status)
	if status == 404 {
		code = ErrCodeNotFound
		msg = "project not found on pepy.tech (404)"
	}
	return &Error{Code: code, Message: msg, Status: status}
}

// Timeout reports a request that exceeded its time bound.
func Timeout(cause error) *Error {
	return Wrap(ErrCodeTimeout, cause, "request to pepy.tech timed out")
}

// Decode reports a response body that could not be interpreted.
func Decode(cause error) *Error {
	return Wrap(ErrCodeDecode, cause, "could not decode pepy.tech response")
}

// Argument reports malformed user input.
func Argument(format string, args ...any) *Error {
	return New(ErrCodeInvalidArgument, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Status returns the HTTP status carried by err, or 0.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
