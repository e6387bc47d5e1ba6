package domain

import "fmt"

// Error types for consistent error handling across the service.

// ErrInvalidBoleto indicates a digitable line that failed structural or
// checksum validation. Digits carries the stripped digit string so
// callers can log exactly what was rejected.
type ErrInvalidBoleto struct {
	Digits string
	Reason string
}

func (e *ErrInvalidBoleto) Error() string {
	return fmt.Sprintf("invalid digitable line: %s", e.Reason)
}

// ErrValidation indicates a malformed request (bad input shape).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}
