// Package httpx defines the uniform response envelope and the single
// error-normalization boundary every handler runs behind.
package httpx

import "net/http"

// Error is a failure with an HTTP status attached. Handlers return
// these instead of writing their own error responses.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest covers missing or malformed input.
func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// Conflict covers uniqueness violations.
func Conflict(message string) *Error {
	return NewError(http.StatusConflict, message)
}

func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// Upload covers media adapter failures. Callers see a 400 like any
// other rejected input, the log keeps the real cause.
func Upload(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func Internal(message string) *Error {
	return NewError(http.StatusInternalServerError, message)
}
