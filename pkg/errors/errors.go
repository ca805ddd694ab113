// Package errors provides coded domain errors that the HTTP layer can
// translate into response statuses without inspecting error strings.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeConflict     Code = "conflict"
	CodeRateLimited  Code = "rate_limited"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
)

// DomainError carries a code plus a human-readable description. The
// description is safe to return to callers for client-caused codes; for
// CodeInternal it must stay server-side.
type DomainError struct {
	Code        Code
	Description string
	// Details holds field-level messages for validation failures.
	Details []string
	wrapped error
}

func (e *DomainError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *DomainError) Unwrap() error { return e.wrapped }

// New builds a DomainError with the given code and description.
func New(code Code, description string) *DomainError {
	return &DomainError{Code: code, Description: description}
}

// NewWithDetails builds a validation error carrying field-level messages.
func NewWithDetails(code Code, description string, details []string) *DomainError {
	return &DomainError{Code: code, Description: description, Details: details}
}

// Wrap attaches a cause so callers can log the underlying failure while the
// response only exposes the code.
func Wrap(code Code, description string, err error) *DomainError {
	return &DomainError{Code: code, Description: description, wrapped: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a code onto the response status used across handlers.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
