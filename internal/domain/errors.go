package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates that no caller identity is present
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates the caller failed the access policy
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Is lets typed errors match their sentinels with errors.Is()
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
	ErrConcurrency  = errors.New("concurrent modification")
	ErrConstraint   = errors.New("constraint violation")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (workspace, user)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ConcurrencyError is returned when a row lock could not be acquired in time
// or the database aborted the transaction to break a deadlock.
// The operation had no effect and is safe to retry.
type ConcurrencyError struct {
	Message string
	Cause   error
}

func (e *ConcurrencyError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ConcurrencyError) Unwrap() error { return e.Cause }

// StatusCode implements the HTTPError interface
func (e *ConcurrencyError) StatusCode() int { return http.StatusConflict }

// Retryable reports whether the caller may retry the operation unchanged
func (e *ConcurrencyError) Retryable() bool { return true }

// Is allows errors.Is() to match against ErrConcurrency
func (e *ConcurrencyError) Is(target error) bool { return target == ErrConcurrency }

// ConstraintError is a uniqueness or foreign-key violation reported by storage.
// It indicates a bug or an unexpected race and is surfaced as a server error.
type ConstraintError struct {
	Constraint string
	Cause      error
}

func (e *ConstraintError) Error() string {
	msg := "constraint violation"
	if e.Constraint != "" {
		msg += " (" + e.Constraint + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConstraintError) Unwrap() error { return e.Cause }

// StatusCode implements the HTTPError interface
func (e *ConstraintError) StatusCode() int { return http.StatusInternalServerError }

// Is allows errors.Is() to match against ErrConstraint
func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }
