// Package shared contains common domain types, errors, and validation
// guards used across all domain packages. This package has zero external
// dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrFutureTimestamp = errors.New("timestamp cannot be in the future")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrExpired         = errors.New("expired")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "faculty", "emaildomain"
	Op      string // Operation that failed, e.g., "Create", "Update"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	case e.Op == "":
		// Validation failures carry their entity tag inside the message.
		return e.Message
	default:
		return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
	}
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation failure tagged with the owning
// entity's name. The message reads "<Entity> validation error: <reason>",
// which is the single error shape every entity constructor raises.
func NewValidationError(entity, reason string) *DomainError {
	return &DomainError{
		Domain:  entity,
		Kind:    ErrValidation,
		Message: fmt.Sprintf("%s validation error: %s", entity, reason),
	}
}

// Student domain errors
var (
	ErrStudentNotFound      = NewDomainError("student", "Find", ErrNotFound, "student not found")
	ErrStudentAlreadyExists = NewDomainError("student", "Create", ErrAlreadyExists, "student already exists")
)

// Faculty domain errors
var (
	ErrFacultyNotFound      = NewDomainError("faculty", "Find", ErrNotFound, "faculty not found")
	ErrFacultyAlreadyExists = NewDomainError("faculty", "Create", ErrAlreadyExists, "faculty already exists")
)

// Registry domain errors
var (
	ErrEmailDomainNotFound      = NewDomainError("emaildomain", "Find", ErrNotFound, "email domain not found")
	ErrEmailDomainAlreadyExists = NewDomainError("emaildomain", "Create", ErrAlreadyExists, "email domain already exists")
	ErrPhoneConfigNotFound      = NewDomainError("phonenumber", "Find", ErrNotFound, "phone number config not found")
	ErrPhoneConfigAlreadyExists = NewDomainError("phonenumber", "Create", ErrAlreadyExists, "phone number config already exists")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}
