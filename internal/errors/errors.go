package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode wraps err under the given code
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr == err {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInputNotFound   = "INPUT_NOT_FOUND"
	CodeEmptyInput      = "EMPTY_INPUT"
	CodeSchemaViolation = "SCHEMA_VIOLATION"
	CodeRenderFailure   = "RENDER_FAILURE"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InputNotFound(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeInputNotFound,
		Message: fmt.Sprintf("input file '%s' not found", path),
		Cause:   cause,
	}
}

func EmptyInput(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeEmptyInput,
		Message: fmt.Sprintf("input file '%s' is empty (0 bytes)", path),
		Cause:   cause,
	}
}

func SchemaViolation(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeSchemaViolation,
		Message: fmt.Sprintf("input file '%s' does not match the expected layout", path),
		Cause:   cause,
	}
}

func RenderFailure(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailure,
		Message: fmt.Sprintf("failed to write report '%s'", path),
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
