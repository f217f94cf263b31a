package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a sentinel error for "not found" cases
	ErrNotFound = errors.New("not found")
	// ErrValidation marks errors caused by bad client input
	ErrValidation = errors.New("validation failed")
	// ErrNotConfigured is returned by integrations that are missing credentials
	ErrNotConfigured = errors.New("integration is not configured")
)

// ValidationError carries a message that is safe to return to the client
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a client input error with the given message
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a failure reported by a third-party API.
// Code holds the provider's own error string when it sent one (e.g. Slack's "invalid_auth").
type UpstreamError struct {
	Service string
	Code    string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s API error: %s", e.Service, e.Code)
	}
	return fmt.Sprintf("%s API error: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error was caused by bad client input
func IsValidationError(err error) bool {
	return err != nil && errors.Is(err, ErrValidation)
}

// IsNotConfiguredError checks if an error came from a disabled integration
func IsNotConfiguredError(err error) bool {
	return err != nil && errors.Is(err, ErrNotConfigured)
}

// ValidationMessage returns the client-facing message of a validation error, or "" if err is not one
func ValidationMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return ""
}

// UpstreamCode returns the provider error string carried by err, or "" when none was sent
func UpstreamCode(err error) string {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Code
	}
	return ""
}
