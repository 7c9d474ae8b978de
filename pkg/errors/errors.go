// Package errors provides structured error types for rowminer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core, the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_OUT_OF_RANGE, CAPACITY_EXCEEDED, ROW_LENGTH_MISMATCH: row precondition failures
//   - NOT_FOUND_*: Resource not found
//   - NETWORK_*: Network-related errors
//   - INTERNAL_*: Unexpected internal errors
//
// None of the row precondition codes is retryable: the core is a deterministic
// in-memory computation.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfRange, "number(%d) > maxNumber(%d)", n, max)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "line %d", line)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Row and configuration preconditions
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeOutOfRange           Code = "OUT_OF_RANGE"
	ErrCodeCapacityExceeded     Code = "CAPACITY_EXCEEDED"
	ErrCodeIndexOutOfRange      Code = "INDEX_OUT_OF_RANGE"
	ErrCodeRowLengthMismatch    Code = "ROW_LENGTH_MISMATCH"
	ErrCodeDuplicateNumber      Code = "DUPLICATE_NUMBER"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Execution errors
	ErrCodeCanceled    Code = "CANCELED"
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

// IsPrecondition reports whether err carries one of the row or configuration
// precondition codes. These are caller mistakes and never succeed on retry.
func IsPrecondition(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfiguration,
		ErrCodeOutOfRange,
		ErrCodeCapacityExceeded,
		ErrCodeIndexOutOfRange,
		ErrCodeRowLengthMismatch,
		ErrCodeDuplicateNumber,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat:
		return true
	}
	return false
}
