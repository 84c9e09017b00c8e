// Package api defines the error taxonomy shared by services and the HTTP
// boundary, and the JSON response envelope.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
)

// Error is the error type returned by all lifecycle operations. Message is
// safe to show to clients; Err carries internal detail for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a missing or malformed input field.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Authentication reports a missing, invalid or expired credential.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Forbidden reports an authenticated actor with insufficient privilege.
func Forbidden(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound reports an unknown identifier.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure. The client sees only message;
// err is kept for server-side logging.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// StatusCode maps an error to its HTTP status. Unclassified errors are
// treated as internal.
func StatusCode(err error) int {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to surface to clients. Internal
// errors yield a generic message regardless of their wrapped detail.
func ClientMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind != KindInternal {
		return apiErr.Message
	}
	return "internal server error"
}
