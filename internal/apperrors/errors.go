// Package apperrors defines the error kinds surfaced by the service layer.
// Handlers translate a kind into an HTTP status; nothing below the handler
// layer knows about status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an AppError.
type ErrorType string

const (
	// ErrorTypeValidation marks malformed or inconsistent input, e.g. an
	// end date before the start date.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound marks a missing outdoor, reservation or user.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeConflict marks an interval overlapping an existing
	// reservation or a duplicate unique key.
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeUnauthorized marks bad credentials or an inactive account.
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeStorage marks a failure of the underlying store.
	ErrorTypeStorage ErrorType = "STORAGE"
)

// AppError carries a kind, a client-safe message and optionally the
// underlying cause plus structured details (field errors, conflicting rows).
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Details any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// NewStorageError wraps a store failure. The message is what clients see;
// err is kept for logs.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeStorage, Message: message, Err: err}
}

// TypeOf returns the kind of the first AppError in err's chain, or
// ErrorTypeStorage when err carries no kind at all.
func TypeOf(err error) ErrorType {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Type
	}
	return ErrorTypeStorage
}

// Is reports whether err's chain contains an AppError of the given kind.
func Is(err error, t ErrorType) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Type == t
}
