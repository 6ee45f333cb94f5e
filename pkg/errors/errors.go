// Package errors provides structured error types for flighttree.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP server can
// decide how to report them: a missing sample file is a warning, a blank
// search query is a user mistake, a dataset without a Kode column is fatal
// for the request.
//
// # Error Codes
//
//   - INVALID_*, TOO_LARGE: input validation failures
//   - *_NOT_FOUND: missing resources
//   - NO_INPUT / EMPTY_QUERY: nothing to work on
//   - STORE_ERROR / INTERNAL_ERROR: backend and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCount, "count %d outside [%d, %d]", n, lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidCount) {
//	    // report to the user
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidDataset, cause, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidDataset Code = "INVALID_DATASET"
	ErrCodeInvalidCount   Code = "INVALID_COUNT"
	ErrCodeInvalidQuery   Code = "INVALID_QUERY"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidAction  Code = "INVALID_ACTION"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeTooLarge       Code = "TOO_LARGE"

	// Missing input
	ErrCodeNoInput    Code = "NO_INPUT"
	ErrCodeEmptyQuery Code = "EMPTY_QUERY"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeDatasetNotFound Code = "DATASET_NOT_FOUND"

	// Backend and internal errors
	ErrCodeStore       Code = "STORE_ERROR"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsWarning reports whether err should be shown as a non-fatal warning
// rather than aborting the current action.
func IsWarning(err error) bool {
	switch GetCode(err) {
	case ErrCodeFileNotFound, ErrCodeNoInput, ErrCodeEmptyQuery:
		return true
	}
	return false
}
