package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable error identifier returned to clients.
type ErrorCode string

const (
	// Authentication
	ErrCodeUnauthorized   ErrorCode = "unauthorized"
	ErrCodeSessionExpired ErrorCode = "session_expired"

	// Validation
	ErrCodeValidation      ErrorCode = "validation_error"
	ErrCodeInvalidInput    ErrorCode = "invalid_input"
	ErrCodeMissingRequired ErrorCode = "missing_required"

	// Uploads
	ErrCodeNoFile       ErrorCode = "no_file"
	ErrCodeInvalidType  ErrorCode = "invalid_type"
	ErrCodeSizeExceeded ErrorCode = "size_exceeded"

	// Resource
	ErrCodeNotFound ErrorCode = "not_found"

	// Internal
	ErrCodeInternal ErrorCode = "internal_error"
	ErrCodeDatabase ErrorCode = "database_error"
)

// AppError is a structured error that can be returned to clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Common error constructors

func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message)
}

func SessionExpired() *AppError {
	return New(ErrCodeSessionExpired, "Session expired")
}

func ValidationError(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func InvalidInput(field string, reason string) *AppError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("Invalid %s: %s", field, reason))
}

func MissingRequired(field string) *AppError {
	return New(ErrCodeMissingRequired, fmt.Sprintf("%s is required", field))
}

func NoFile() *AppError {
	return New(ErrCodeNoFile, "No file uploaded")
}

func InvalidFileType() *AppError {
	return New(ErrCodeInvalidType, "Invalid file type. Only PNG, JPEG, and SVG are allowed.")
}

func FileSizeExceeded() *AppError {
	return New(ErrCodeSizeExceeded, "File size exceeds 2MB limit")
}

func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

func Database(cause error) *AppError {
	return Wrap(ErrCodeDatabase, "Database error", cause)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the error code if err is an AppError, otherwise ErrCodeInternal.
func GetCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}
