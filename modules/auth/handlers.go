package auth

import (
	"errors"
	"net/http"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/pkg/email/templates"
	"github.com/netandconnect/portal/pkg/sanitizer"
	"github.com/netandconnect/portal/pkg/validator"
)

type requestLinkRequest struct {
	Email string `json:"email"`
}

type requestLinkResponse struct {
	OK      bool   `json:"ok"`
	DevLink string `json:"dev_link,omitempty"`
	Message string `json:"message"`
}

type verifyRequest struct {
	Token string `query:"token"`
}

func (s *Service) requestLink(ctx handler.Context, req requestLinkRequest) handler.Response {
	addr := sanitizer.NormalizeEmail(req.Email)
	if err := validator.Apply(
		validator.RequiredString("email", addr),
		validator.ValidEmail("email", addr),
	); err != nil {
		return handler.Error(errors.Join(ErrInvalidEmail, err))
	}

	locale := templates.MatchLocale(ctx.Request().Header.Get("Accept-Language"))
	res, err := s.RequestLink(ctx, addr, locale)
	if err != nil {
		var httpErr handler.HTTPError
		if !errors.As(err, &httpErr) {
			err = errors.Join(ErrSendFailed, err)
		}
		return handler.Error(err)
	}

	if res.DevLink != "" {
		return handler.JSON(requestLinkResponse{
			OK:      true,
			DevLink: res.DevLink,
			Message: "Development mode: magic link generated but email not sent",
		})
	}
	return handler.JSON(requestLinkResponse{OK: true, Message: "Magic link sent successfully"})
}

func (s *Service) verify(ctx handler.Context, req verifyRequest) handler.Response {
	session, err := s.Verify(ctx, req.Token)
	if err != nil {
		return handler.Redirect(s.signInURL(err))
	}
	s.SetSessionCookie(ctx.ResponseWriter(), session.Token)
	return handler.Redirect(s.cfg.DashboardPath)
}

func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	s.ClearSession(ctx.ResponseWriter())
	return handler.Redirect(s.cfg.SignInPath)
}

// RequireSession rejects requests without a valid session cookie with 401
// and stores the claims in the request context otherwise.
func (s *Service) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.Authenticate(r)
		if err != nil {
			_ = handler.JSONError(err).Render(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(SetSessionToContext(r.Context(), claims)))
	})
}
