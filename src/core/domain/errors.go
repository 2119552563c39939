// Package domain contains domain entities, value objects, and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the core. The request layer maps each kind to a
// transport status; only the kind distinction is part of the contract.

var (
	// ErrNotFound is returned when a referenced question or answer does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned for malformed or out-of-range input
	// (bad vote value, missing search filters, oversized content).
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage is returned when the underlying store is unreachable or a
	// statement fails.
	ErrStorage = errors.New("storage failure")
)

// DomainError wraps a base error kind with additional context.
type DomainError struct {
	// Base is the error kind (e.g., ErrNotFound)
	Base error

	// Message is the stable, client-safe description
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string

	// Err is the underlying cause. It is logged, never shown to clients.
	Err error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.Base.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field: %s)", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *DomainError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Base}
	}
	return []error{e.Base, e.Err}
}

// NewNotFoundError creates a not found error for the named resource.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: resource + " not found",
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewStorageError wraps a driver error raised while running op.
func NewStorageError(op string, err error) *DomainError {
	return &DomainError{
		Base:    ErrStorage,
		Message: op,
		Err:     err,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStorageError checks if an error is a storage failure.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsDomainError reports whether err already carries one of the error kinds.
func IsDomainError(err error) bool {
	return IsNotFound(err) || IsValidationError(err) || IsStorageError(err)
}
