package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/modules/auth"
	"github.com/netandconnect/portal/modules/dashboard"
	"github.com/netandconnect/portal/pkg/clientip"
	"github.com/netandconnect/portal/pkg/httpserver"
	"github.com/netandconnect/portal/pkg/ratelimit"
	"github.com/netandconnect/portal/pkg/requestid"
)

func (a *App) router(authSvc *auth.Service, dashSvc *dashboard.Service, limiter *ratelimit.Limiter, ips *clientip.Resolver) http.Handler {
	errorHandler := handler.NewErrorHandler(a.log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer, ips.Middleware)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(a.log, a.checks...))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", authSvc.Router(auth.RouterOptions{
			ErrorHandler: errorHandler,
			Limiter:      limiter,
		}))
		api.Group(func(protected chi.Router) {
			protected.Use(authSvc.RequireSession)
			dashSvc.Routes(protected, errorHandler)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, req)
	})
	return r
}
