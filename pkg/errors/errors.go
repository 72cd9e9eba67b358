// Package errors provides structured error types for the paraphraser.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into two groups. Client errors describe a request that can never
// succeed as sent (INVALID_*, UNKNOWN_METHOD, SAMPLE_SIZE_EXCEEDED,
// STRUCTURAL_AMBIGUITY, TOO_MANY_COMBINATIONS). Everything else is internal.
// [HTTPStatus] maps codes to response status codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "limit must be non-negative, got %d", limit)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidTree, parseErr, "cannot read tree")
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidTree   Code = "INVALID_TREE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Transformation errors
	ErrCodeUnknownMethod       Code = "UNKNOWN_METHOD"
	ErrCodeSampleSizeExceeded  Code = "SAMPLE_SIZE_EXCEEDED"
	ErrCodeStructuralAmbiguity Code = "STRUCTURAL_AMBIGUITY"
	ErrCodeTooManyCombinations Code = "TOO_MANY_COMBINATIONS"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
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

// coder is implemented by the specialised error types below.
type coder interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed error with a
// matching code. Only the outermost coded error is considered.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by the request rather than by
// the service.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidTree, ErrCodeUnknownMethod,
		ErrCodeSampleSizeExceeded, ErrCodeStructuralAmbiguity, ErrCodeTooManyCombinations:
		return true
	}
	return false
}

// HTTPStatus maps err to an HTTP status code.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeTooManyCombinations:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound:
		return http.StatusNotFound
	}
	if IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// UnknownMethodError is returned when a requested transformation has no
// implementation.
type UnknownMethodError struct {
	Method string // The name that failed to resolve
}

// Error implements the error interface.
func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("There is no method for paraphrasing by %s", e.Method)
}

// Code returns the error code for this error type.
func (e *UnknownMethodError) Code() Code {
	return ErrCodeUnknownMethod
}

// SampleSizeError is returned when more trees are requested than were produced.
type SampleSizeError struct {
	Requested int
	Available int
}

// Error implements the error interface.
func (e *SampleSizeError) Error() string {
	return fmt.Sprintf("cannot sample %d trees from %d paraphrases", e.Requested, e.Available)
}

// Code returns the error code for this error type.
func (e *SampleSizeError) Code() Code {
	return ErrCodeSampleSizeExceeded
}
