package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError carries a status code and a stable machine-readable key.
type HTTPError struct {
	Code    int
	Key     string
	Message string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// NewHTTPError builds an HTTPError. An empty message falls back to the
// status text.
func NewHTTPError(code int, key, message string) HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return HTTPError{Code: code, Key: key, Message: message}
}

var (
	ErrBadRequest      = NewHTTPError(http.StatusBadRequest, "bad_request", "Invalid request")
	ErrUnauthorized    = NewHTTPError(http.StatusUnauthorized, "unauthorized", "Unauthorized")
	ErrNotFound        = NewHTTPError(http.StatusNotFound, "not_found", "Not found")
	ErrTooManyRequests = NewHTTPError(http.StatusTooManyRequests, "too_many_requests", "Too many requests")
	ErrInternalServer  = NewHTTPError(http.StatusInternalServerError, "internal_error", "Internal server error")
)
