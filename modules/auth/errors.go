package auth

import (
	"errors"
	"net/http"

	"github.com/netandconnect/portal/handler"
)

var (
	ErrMissingToken = errors.New("magic link token is missing")
	ErrLinkExpired  = errors.New("magic link has expired")
	ErrLinkInvalid  = errors.New("magic link is invalid")
)

var (
	ErrInvalidEmail     = handler.NewHTTPError(http.StatusBadRequest, "invalid_email", "Invalid email")
	ErrSendFailed       = handler.NewHTTPError(http.StatusInternalServerError, "email_send_failed", "Failed to send magic link")
	ErrUnauthorized     = handler.ErrUnauthorized
	ErrInvalidAuthToken = handler.NewHTTPError(http.StatusUnauthorized, "invalid_auth_token", "Invalid auth token")
)

// Redirect error codes understood by the sign-in page.
const (
	codeMissingToken = "missing-token"
	codeExpired      = "expired"
	codeInvalidToken = "invalid-token"
)

func signInErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return codeMissingToken
	case errors.Is(err, ErrLinkExpired):
		return codeExpired
	default:
		return codeInvalidToken
	}
}
