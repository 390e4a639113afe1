package errors

import (
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")

	// Vendor errors
	ErrProviderNotFound = New("provider not found")
	ErrEmptyAudio       = New("audio payload is empty")

	// Store errors
	ErrNotFound          = New("transcript not found")
	ErrInsertFailed      = New("insert failed")
	ErrUpdateFailed      = New("update failed")
	ErrDeleteFailed      = New("delete failed")
	ErrQueryFailed       = New("query failed")
	ErrScanFailed        = New("scan failed")
	ErrInvalidTransition = New("invalid status transition")

	// Network errors
	ErrRequestFailed   = New("request failed")
	ErrResponseInvalid = New("invalid response")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Wrapf(ErrInvalidConfig, "%s is required", field)
}

// NotFound returns ErrNotFound annotated with the missing identifier
func NotFound(id int64) error {
	return Wrapf(ErrNotFound, "id %d", id)
}

// Mark tags err with a sentinel while keeping err itself unwrappable, so both
// errors.Is(sentinel) and errors.As on the underlying type succeed.
func Mark(sentinel *Error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
