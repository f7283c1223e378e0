package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned when a listing id is not a positive integer.
	ErrInvalidID = errors.New("invalid listing id")

	// ErrNotFound is returned when the requested listing does not exist.
	ErrNotFound = errors.New("listing not found")

	// ErrNotAuthenticated is returned by operations that need a session
	// when none exists.
	ErrNotAuthenticated = errors.New("you must be logged in")

	// ErrValidation is wrapped by every FieldError.
	ErrValidation = errors.New("invalid input")
)

// FieldError reports an invalid or missing form field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func required(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}
