package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrNotFound_Error(t *testing.T) {
	err := &ErrNotFound{
		Entity: "copy angle",
		ID:     "2025-06-01/Summer Promo",
	}

	expected := "copy angle not found with ID: 2025-06-01/Summer Promo"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestStoreWriteError(t *testing.T) {
	underlyingErr := fmt.Errorf("connection reset")
	err := NewStoreWriteError("daily_analytics", "insert", underlyingErr)

	expected := "failed to insert daily_analytics: connection reset"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	if !errors.Is(err, underlyingErr) {
		t.Error("Expected errors.Is to find the wrapped error")
	}

	var writeErr *StoreWriteError
	if !errors.As(fmt.Errorf("step failed: %w", err), &writeErr) {
		t.Fatal("Expected errors.As to find a StoreWriteError")
	}
	if writeErr.Entity != "daily_analytics" || writeErr.Op != "insert" {
		t.Errorf("Unexpected fields: %+v", writeErr)
	}

	if NewStoreWriteError("campaigns", "upsert", nil) != nil {
		t.Error("Expected nil for a nil cause")
	}
}

func TestAuthorizationError_Error(t *testing.T) {
	if got := (&AuthorizationError{}).Error(); got != "unauthorized" {
		t.Errorf("Expected 'unauthorized', got '%s'", got)
	}
	if got := (&AuthorizationError{Reason: "missing bearer token"}).Error(); got != "unauthorized: missing bearer token" {
		t.Errorf("Unexpected message '%s'", got)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("limit must be positive")

	expected := "validation error: limit must be positive"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}
