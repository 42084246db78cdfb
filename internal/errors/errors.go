// Package errors provides typed error definitions for workbench.
// This package consolidates error handling and provides structured error types
// that can be used for better error classification and handling.
package errors

import (
	"fmt"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"

	// Container errors
	ErrContainerNotFound  ErrorCode = "CONTAINER_NOT_FOUND"
	ErrContainerNotReady  ErrorCode = "CONTAINER_NOT_READY"
	ErrContainerCreate    ErrorCode = "CONTAINER_CREATE_FAILED"
	ErrContainerStart     ErrorCode = "CONTAINER_START_FAILED"
	ErrContainerStop      ErrorCode = "CONTAINER_STOP_FAILED"
	ErrContainerExec      ErrorCode = "CONTAINER_EXEC_FAILED"
	ErrContainerInvalidID ErrorCode = "CONTAINER_INVALID_ID"
	ErrImageBuild         ErrorCode = "IMAGE_BUILD_FAILED"

	// Git errors
	ErrGitRepoNotFound ErrorCode = "GIT_REPO_NOT_FOUND"
	ErrGitCloneFailed  ErrorCode = "GIT_CLONE_FAILED"
	ErrGitDiffFailed   ErrorCode = "GIT_DIFF_FAILED"

	// Descriptor errors
	ErrDescriptorNotFound ErrorCode = "DESCRIPTOR_NOT_FOUND"
	ErrDescriptorInvalid  ErrorCode = "DESCRIPTOR_INVALID"

	// Database errors
	ErrDatabaseConnection ErrorCode = "DATABASE_CONNECTION"
	ErrDatabaseQuery      ErrorCode = "DATABASE_QUERY"
	ErrDatabaseMigration  ErrorCode = "DATABASE_MIGRATION"

	// Validation errors
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrInvalidPath      ErrorCode = "INVALID_PATH"

	// Internal errors
	ErrInternal  ErrorCode = "INTERNAL_ERROR"
	ErrTimeout   ErrorCode = "TIMEOUT"
	ErrCancelled ErrorCode = "CANCELLED"

	// File/IO errors
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrFileRead  ErrorCode = "FILE_READ"

	// Cleanup errors
	ErrCleanup ErrorCode = "CLEANUP"
)

// WorkbenchError represents a structured error with additional context
type WorkbenchError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *WorkbenchError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *WorkbenchError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *WorkbenchError) WithContext(key string, value interface{}) *WorkbenchError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause adds the underlying cause error
func (e *WorkbenchError) WithCause(cause error) *WorkbenchError {
	e.Cause = cause
	return e
}

// New creates a new WorkbenchError
func New(code ErrorCode, message string) *WorkbenchError {
	return &WorkbenchError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new WorkbenchError with details
func NewWithDetails(code ErrorCode, message, details string) *WorkbenchError {
	return &WorkbenchError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap creates a new WorkbenchError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *WorkbenchError {
	return &WorkbenchError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetails creates a new WorkbenchError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *WorkbenchError {
	return &WorkbenchError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// IsWorkbenchError checks if an error is a WorkbenchError
func IsWorkbenchError(err error) bool {
	_, ok := err.(*WorkbenchError)
	return ok
}

// GetCode extracts the error code from an error, if it's a WorkbenchError
func GetCode(err error) ErrorCode {
	if we, ok := err.(*WorkbenchError); ok {
		return we.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
