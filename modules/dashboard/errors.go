package dashboard

import (
	"errors"
	"net/http"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/svc/member"
)

var (
	ErrInvalidAmount      = handler.NewHTTPError(http.StatusBadRequest, "invalid_amount", "Invalid amount")
	ErrInsufficientTokens = handler.NewHTTPError(http.StatusBadRequest, "insufficient_tokens", "Insufficient tokens")
	ErrUserNotFound       = handler.NewHTTPError(http.StatusNotFound, "user_not_found", "User not found")
	ErrInvalidAction      = handler.NewHTTPError(http.StatusBadRequest, "invalid_action", "Invalid action")
	ErrEventNotFound      = handler.NewHTTPError(http.StatusNotFound, "event_not_found", "Event not found")
	ErrInvalidEventID     = handler.NewHTTPError(http.StatusBadRequest, "invalid_event", "Invalid event id")
)

// ledgerError maps member errors to API errors. Anything else stays a 500.
func ledgerError(err error) error {
	switch {
	case errors.Is(err, member.ErrInvalidAmount):
		return errors.Join(ErrInvalidAmount, err)
	case errors.Is(err, member.ErrInsufficientTokens):
		return errors.Join(ErrInsufficientTokens, err)
	case errors.Is(err, member.ErrMemberNotFound):
		return errors.Join(ErrUserNotFound, err)
	default:
		return err
	}
}
