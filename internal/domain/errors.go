// Package domain defines the core business entities and the error
// taxonomy shared by every service.
package domain

import (
	"errors"
	"net/http"
)

// Common validation errors returned by entity constructors.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyDisplayName = errors.New("display name cannot be empty")
	ErrEmptyTripName    = errors.New("trip name cannot be empty")
	ErrEmptyTripOwner   = errors.New("trip owner cannot be empty")
)

// Error is the typed failure every service operation may return. It carries
// the HTTP status the response layer should use, a stable category name, and
// a user-facing message. Services construct it; only the response normalizer
// consumes it. Immutable once constructed.
type Error struct {
	Status  int    `json:"-"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// BadRequest builds an Error for malformed or conflicting input.
func BadRequest(message string) *Error {
	if message == "" {
		message = "Invalid request"
	}
	return &Error{Status: http.StatusBadRequest, Name: "BadRequest", Message: message}
}

// Unauthorized builds an Error for missing or rejected credentials.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{Status: http.StatusUnauthorized, Name: "UnauthorizedError", Message: message}
}

// Forbidden builds an Error for operations the caller may not perform.
func Forbidden(message string) *Error {
	if message == "" {
		message = "Permission denied"
	}
	return &Error{Status: http.StatusForbidden, Name: "BadPermission", Message: message}
}

// NotFound builds an Error for references to absent entities.
func NotFound(message string) *Error {
	if message == "" {
		message = "Entry not found"
	}
	return &Error{Status: http.StatusNotFound, Name: "NotFound", Message: message}
}

// Internal builds an Error for unexpected failures. The message is always
// generic so collaborator details never leak to clients.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Name: "Error", Message: "An error occurred"}
}

// AsError normalizes any error into an *Error. Typed errors pass through
// untouched; everything else is wrapped as Internal.
func AsError(err error) *Error {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return Internal()
}
