package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Pattern compilation errors (fatal, reported before any walk)
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"
	ErrInvalidGlob    ErrorCode = "INVALID_GLOB"

	// Traversal errors (non-fatal, per entry)
	ErrWalk ErrorCode = "WALK_FAILED"

	// Rename errors
	ErrRenameFailed ErrorCode = "RENAME_FAILED"
	ErrUnsafeName   ErrorCode = "UNSAFE_NAME"
	ErrDestConflict ErrorCode = "DEST_CONFLICT"
)

// FnrError represents a structured error with code and details
type FnrError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FnrError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FnrError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FnrError) Is(target error) bool {
	var targetErr *FnrError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FnrError with the given code and message
func New(code ErrorCode, message string) *FnrError {
	return &FnrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FnrError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FnrError {
	return &FnrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FnrError
func Wrap(err error, code ErrorCode, message string) *FnrError {
	if err == nil {
		return nil
	}
	return &FnrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FnrError {
	if err == nil {
		return nil
	}
	return &FnrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FnrError) WithDetail(key string, value interface{}) *FnrError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fnrErr *FnrError
	if errors.As(err, &fnrErr) {
		return fnrErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FnrError
func GetErrorCode(err error) ErrorCode {
	var fnrErr *FnrError
	if errors.As(err, &fnrErr) {
		return fnrErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FnrError
func GetErrorDetails(err error) map[string]interface{} {
	var fnrErr *FnrError
	if errors.As(err, &fnrErr) {
		return fnrErr.Details
	}
	return nil
}
