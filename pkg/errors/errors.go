package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates a conflict with existing data
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeConstraintViolation indicates stored scheduling data that
	// disagrees with the activity's own limits (bad seed/config data,
	// reported to the caller, never retried)
	ErrorTypeConstraintViolation ErrorType = "CONSTRAINT_VIOLATION"

	// ErrorTypeInactiveActivity indicates an eligibility check against a
	// deleted or deactivated centre activity
	ErrorTypeInactiveActivity ErrorType = "INACTIVE_ACTIVITY"

	// ErrorTypeSubstitutionCycle indicates a corrupt adhoc chain that
	// references itself; must be reported and fixed manually
	ErrorTypeSubstitutionCycle ErrorType = "SUBSTITUTION_CYCLE"

	// ErrorTypeStaleState indicates an optimistic concurrency failure; the
	// caller should refetch and retry
	ErrorTypeStaleState ErrorType = "STALE_STATE"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
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

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// NewConstraintViolationError creates a new constraint violation error
func NewConstraintViolationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConstraintViolation,
		Message: message,
	}
}

// NewInactiveActivityError creates a new inactive activity error
func NewInactiveActivityError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInactiveActivity,
		Message: message,
	}
}

// NewSubstitutionCycleError creates a new substitution cycle error
func NewSubstitutionCycleError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeSubstitutionCycle,
		Message: message,
	}
}

// NewStaleStateError creates a new stale state error
func NewStaleStateError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeStaleState,
		Message: message,
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}
