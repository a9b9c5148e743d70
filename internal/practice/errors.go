package practice

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned for an unknown or pruned session ID.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError reports bad input when creating a session.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
