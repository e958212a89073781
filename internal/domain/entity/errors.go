package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no item exists for the requested stable ID.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that an item failed its validity checks.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports which field of an item failed validation and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
