package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the category of a domain error so transport layers can
// map it to a status without string matching.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeInvalidState ErrorCode = "INVALID_STATE"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeUnavailable  ErrorCode = "UNAVAILABLE"
)

// Error is the base type for all domain errors.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewNotFoundError creates a not-found error for the given entity and identifier.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewInvalidStateError creates an error for an illegal state transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUnauthorizedError creates an authentication error.
func NewUnauthorizedError(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError creates an authorization error.
func NewForbiddenError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// NewConflictError creates a conflict error (duplicate resource, stale version).
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NewUnavailableError creates an error for an unreachable external dependency.
func NewUnavailableError(message string) *Error {
	return &Error{Code: CodeUnavailable, Message: message}
}

// CodeOf returns the error code of err if it wraps a domain Error, or empty.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
