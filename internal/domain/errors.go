package domain

import (
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// StoreWriteError wraps a failed insert, update, delete or upsert
type StoreWriteError struct {
	Entity string
	Op     string
	Err    error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// NewStoreWriteError returns nil when err is nil
func NewStoreWriteError(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreWriteError{Entity: entity, Op: op, Err: err}
}

// AuthorizationError is returned when a trigger credential is missing or wrong
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}
