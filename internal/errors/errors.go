// Package errors provides structured error types for contentvet. Errors
// carry a category, a stable code, and optional file location so the CLI and
// batch validator can classify failures without string matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes errors.
type ErrorType string

const (
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeFormat     ErrorType = "format"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Stable error codes.
const (
	CodeFileNotFound  = "ERR_FILE_NOT_FOUND"
	CodeUnreadable    = "ERR_UNREADABLE"
	CodeInvalidFormat = "ERR_INVALID_FORMAT"
	CodeEmptyContent  = "ERR_EMPTY_CONTENT"
	CodeConfigInvalid = "ERR_CONFIG_INVALID"
	CodeInternal      = "ERR_INTERNAL"
)

// VetError is a structured error with category, code, and optional location.
type VetError struct {
	Type     ErrorType
	Code     string
	Message  string
	Cause    error
	FilePath string
	Line     int
}

// Error implements the error interface.
func (e *VetError) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, location)
	}
	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause.
func (e *VetError) Unwrap() error {
	return e.Cause
}

// Is matches VetErrors by type and code.
func (e *VetError) Is(target error) bool {
	var t *VetError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithFile attaches a file path to the error.
func (e *VetError) WithFile(path string) *VetError {
	e.FilePath = path
	return e
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *VetError {
	return &VetError{Type: ErrorTypeIO, Code: code, Message: message, Cause: cause}
}

// NewFormatError creates a document format error.
func NewFormatError(code, message string, cause error) *VetError {
	return &VetError{Type: ErrorTypeFormat, Code: code, Message: message, Cause: cause}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *VetError {
	return &VetError{Type: ErrorTypeValidation, Code: code, Message: message}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *VetError {
	return &VetError{Type: ErrorTypeConfig, Code: CodeConfigInvalid, Message: message, Cause: cause}
}

// NewInternalError creates an internal error.
func NewInternalError(message string, cause error) *VetError {
	return &VetError{Type: ErrorTypeInternal, Code: CodeInternal, Message: message, Cause: cause}
}
