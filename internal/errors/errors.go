// Package errors defines custom error types for catalog access and configuration.
// CatalogError provides context-aware error reporting with type classification.
package errors

import (
	stderrors "errors"
	"fmt"
)

// CatalogError represents errors that occur while talking to the catalog service
type CatalogError struct {
	Type    string
	Reason  string
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Reason)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeFetchFailed   = "FETCH_FAILED"
	ErrorTypeAPIKeyMissing = "API_KEY_MISSING"
	ErrorTypeAPIKeyInvalid = "API_KEY_INVALID"
	ErrorTypeInvalidID     = "INVALID_ID"
)

// Fetch failure reasons
const (
	ReasonNetwork      = "network"
	ReasonStatus       = "status"
	ReasonDecode       = "decode"
	ReasonUnauthorized = "unauthorized"
	ReasonRateLimited  = "rate_limited"
	ReasonCanceled     = "canceled"
)

// NewCatalogError creates a new CatalogError
func NewCatalogError(errorType, message string, cause error) *CatalogError {
	return &CatalogError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewFetchError creates a fetch failure with a reason classification
func NewFetchError(reason, message string, cause error) *CatalogError {
	e := NewCatalogError(ErrorTypeFetchFailed, message, cause)
	e.Reason = reason
	return e
}

// NewAPIKeyMissingError creates an API key missing error
func NewAPIKeyMissingError(service string) *CatalogError {
	return NewCatalogError(ErrorTypeAPIKeyMissing, fmt.Sprintf("API key missing for %s", service), nil)
}

// NewAPIKeyInvalidError creates an error for a credential with the wrong shape
func NewAPIKeyInvalidError(service string) *CatalogError {
	return NewCatalogError(ErrorTypeAPIKeyInvalid, fmt.Sprintf("API key for %s is malformed", service), nil)
}

// NewInvalidIDError creates an invalid ID error
func NewInvalidIDError(id string) *CatalogError {
	return NewCatalogError(ErrorTypeInvalidID, fmt.Sprintf("Invalid ID format: %s", id), nil)
}

// IsFetchError reports whether err is (or wraps) a catalog fetch failure
func IsFetchError(err error) bool {
	var ce *CatalogError
	return stderrors.As(err, &ce) && ce.Type == ErrorTypeFetchFailed
}

// ReasonOf returns the fetch failure reason of err, or "" when err is not a fetch failure
func ReasonOf(err error) string {
	var ce *CatalogError
	if stderrors.As(err, &ce) && ce.Type == ErrorTypeFetchFailed {
		return ce.Reason
	}
	return ""
}

// Is reports whether err has the given type
func Is(err error, errorType string) bool {
	var ce *CatalogError
	return stderrors.As(err, &ce) && ce.Type == errorType
}
