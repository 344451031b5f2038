package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeStructural marks malformed or empty input: no header row,
	// no data rows, a missing coordinate or variable.
	ErrTypeStructural ErrorType = "STRUCTURAL"
	// ErrTypeConsistency marks sources that must describe the same
	// entity catalogue but disagree in membership or order.
	ErrTypeConsistency ErrorType = "CONSISTENCY"
	// ErrTypeLengthMismatch marks paired arrays and coordinates of
	// unequal length where equality is a precondition.
	ErrTypeLengthMismatch ErrorType = "LENGTH_MISMATCH"

	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewStructuralError creates an error for malformed or empty input
func NewStructuralError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStructural, message, cause)
}

// NewConsistencyError creates an error for mismatched entity catalogues.
// The message must name the catalogue that disagreed.
func NewConsistencyError(message string) *AppError {
	return NewAppError(ErrTypeConsistency, message, nil)
}

// NewLengthMismatchError creates an error for paired sequences of
// unequal length
func NewLengthMismatchError(message string) *AppError {
	return NewAppError(ErrTypeLengthMismatch, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of err if it is (or wraps) an AppError,
// or the empty string otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsStructural reports whether err is a structural input error
func IsStructural(err error) bool {
	return TypeOf(err) == ErrTypeStructural
}

// IsConsistency reports whether err is a catalogue consistency error
func IsConsistency(err error) bool {
	return TypeOf(err) == ErrTypeConsistency
}

// IsLengthMismatch reports whether err is a length mismatch error
func IsLengthMismatch(err error) bool {
	return TypeOf(err) == ErrTypeLengthMismatch
}
