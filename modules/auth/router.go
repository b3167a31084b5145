package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/pkg/binder"
	"github.com/netandconnect/portal/pkg/ratelimit"
)

// RouterOptions holds what the auth routes need besides the Service.
// A nil Limiter disables rate limiting of link requests.
type RouterOptions struct {
	ErrorHandler handler.ErrorHandler[handler.Context]
	Limiter      *ratelimit.Limiter
}

// Router serves the auth endpoints, meant to be mounted at /api/auth.
//
//	POST /request-link   {email}
//	GET  /verify?token=
//	GET  /logout
//
// The root also accepts the older ?req=request-link|verify|logout form.
func (s *Service) Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	requestLink := handler.Wrap(handler.HandlerFunc[handler.Context, requestLinkRequest](s.requestLink),
		handler.WithBinders[handler.Context, requestLinkRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, requestLinkRequest](opts.ErrorHandler),
	)
	verify := handler.Wrap(handler.HandlerFunc[handler.Context, verifyRequest](s.verify),
		handler.WithBinders[handler.Context, verifyRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, verifyRequest](opts.ErrorHandler),
	)
	logout := handler.Wrap(handler.HandlerFunc[handler.Context, struct{}](s.logout),
		handler.WithErrorHandler[handler.Context, struct{}](opts.ErrorHandler),
	)

	var limited http.Handler = requestLink
	if opts.Limiter != nil {
		limited = ratelimit.Middleware(opts.Limiter, ratelimit.ByIP,
			ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ ratelimit.Result) {
				_ = handler.JSONError(handler.ErrTooManyRequests).Render(w, r)
			}),
		)(requestLink)
	}

	r.Method(http.MethodPost, "/request-link", limited)
	r.Get("/verify", verify)
	r.Get("/logout", logout)
	r.Post("/logout", logout)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Query().Get("req") {
		case "verify":
			verify(w, req)
		case "logout":
			logout(w, req)
		default:
			_ = handler.JSONError(handler.ErrBadRequest).Render(w, req)
		}
	})
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("req") == "request-link" {
			limited.ServeHTTP(w, req)
			return
		}
		_ = handler.JSONError(handler.ErrBadRequest).Render(w, req)
	})

	return r
}
