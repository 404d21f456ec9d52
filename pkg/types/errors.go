package types

import (
	"errors"
	"fmt"
)

// Record store errors.
var (
	ErrNotFound     = errors.New("no record associated to this email")
	ErrDuplicate    = errors.New("a record associated to this email already exists")
	ErrUnknownField = errors.New("the key does not exist for this record")
	ErrValidation   = errors.New("invalid field value")
)

// Document store errors.
var (
	ErrInvalidID       = errors.New("invalid document ID")
	ErrStoreDetached   = errors.New("document store is detached")
	ErrAlreadyAttached = errors.New("document store is already attached")
)

// ValidationError reports a field value rejected by the validator. Reason is
// the human-readable rule that failed.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError for the given document field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
