package errors

import (
	"fmt"
	"strings"
)

// ErrNotFound indicates a resource could not be located
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates missing or invalid credentials
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation carries field-level validation failures back to the form
type ErrValidation struct {
	Fields []FieldError
}

func (e *ErrValidation) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ErrUpstream indicates a failure in an external collaborator (database,
// payment gateway). Retryable by the caller; never retried here.
type ErrUpstream struct {
	Service string
	Err     error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream %s error: %v", e.Service, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrConfiguration indicates missing required service credentials.
// Raised at startup, never degraded into a stub client.
type ErrConfiguration struct {
	Key string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// ErrInvalidStateTransition indicates a disallowed order status change
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}
