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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Run control
	ErrUserAbort ErrorCode = "USER_ABORT"
	ErrLocked    ErrorCode = "LOCKED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Destination and store errors
	ErrDestination    ErrorCode = "DESTINATION"
	ErrStore          ErrorCode = "STORE"
	ErrDocumentFormat ErrorCode = "DOCUMENT_FORMAT"
	ErrManifestFormat ErrorCode = "MANIFEST_FORMAT"

	// External tools
	ErrVCS ErrorCode = "VCS"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileDelete   ErrorCode = "FILE_DELETE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// EzError represents a structured error with code and details
type EzError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EzError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EzError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EzError) Is(target error) bool {
	var targetErr *EzError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EzError with the given code and message
func New(code ErrorCode, message string) *EzError {
	return &EzError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EzError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EzError {
	return &EzError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EzError
func Wrap(err error, code ErrorCode, message string) *EzError {
	if err == nil {
		return nil
	}
	return &EzError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EzError {
	if err == nil {
		return nil
	}
	return &EzError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// IO wraps a filesystem failure and records the offending path.
func IO(err error, code ErrorCode, op, path string) error {
	if err == nil {
		return nil
	}
	return Wrapf(err, code, "%s %s", op, path).WithDetail("path", path)
}

// WithDetail adds a detail to the error
func (e *EzError) WithDetail(key string, value interface{}) *EzError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *EzError) WithDetails(details map[string]interface{}) *EzError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ezErr *EzError
	if errors.As(err, &ezErr) {
		return ezErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EzError
func GetErrorCode(err error) ErrorCode {
	var ezErr *EzError
	if errors.As(err, &ezErr) {
		return ezErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an EzError
func GetErrorDetails(err error) map[string]interface{} {
	var ezErr *EzError
	if errors.As(err, &ezErr) {
		return ezErr.Details
	}
	return nil
}
