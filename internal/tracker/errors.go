package tracker

import (
	"errors"
	"fmt"
)

// ErrUserNotFound indicates an operation referenced an unknown user id.
var ErrUserNotFound = errors.New("user not found")

// ErrPlanNotFound indicates an operation referenced an unknown plan id.
var ErrPlanNotFound = errors.New("plan not found")

// ValidationError indicates input that was rejected before any state
// changed. Field names the offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
