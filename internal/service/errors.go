package service

import (
	"errors"
	"fmt"
)

// Workflow errors shared across services. Handlers map these onto the
// HTTP taxonomy (401/403/404/409).
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted")
	ErrConflict        = errors.New("resource already exists")
)

// ValidationError reports the first violated field of a request.
// Workflows fail fast: no partial validation reporting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// invalid builds a ValidationError for a field.
func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
