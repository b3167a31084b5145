package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/pkg/binder"
)

// Router serves the dashboard API, meant to be mounted at /api behind a
// session middleware.
//
//	GET  /user/profile
//	GET  /user/tokens
//	POST /user/tokens?action=spend|add|balance   {amount}
//	GET  /user/transactions?limit=
//	GET  /members|experts|partners|community?page=&limit=
//	GET  /events
//	POST /events/join                            {eventId}
func (s *Service) Router(errorHandler handler.ErrorHandler[handler.Context]) chi.Router {
	r := chi.NewRouter()
	s.Routes(r, errorHandler)
	return r
}

// Routes registers the dashboard API on r, for use inside a route group
// that carries the session middleware.
func (s *Service) Routes(r chi.Router, errorHandler handler.ErrorHandler[handler.Context]) {
	none := func(h handler.HandlerFunc[handler.Context, struct{}]) http.HandlerFunc {
		return handler.Wrap(h, handler.WithErrorHandler[handler.Context, struct{}](errorHandler))
	}
	paged := func(h handler.HandlerFunc[handler.Context, pageRequest]) http.HandlerFunc {
		return handler.Wrap(h,
			handler.WithBinders[handler.Context, pageRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, pageRequest](errorHandler),
		)
	}

	r.Get("/user/profile", none(s.profile))
	r.Get("/user/tokens", none(s.balance))
	r.Post("/user/tokens", handler.Wrap(handler.HandlerFunc[handler.Context, tokensRequest](s.tokens),
		handler.WithBinders[handler.Context, tokensRequest](binder.Query(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, tokensRequest](errorHandler),
	))
	r.Get("/user/transactions", handler.Wrap(handler.HandlerFunc[handler.Context, historyRequest](s.history),
		handler.WithBinders[handler.Context, historyRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, historyRequest](errorHandler),
	))

	r.Get("/members", paged(listing("members", DefaultMembersLimit, s.directory.Members)))
	r.Get("/experts", paged(listing("experts", DefaultExpertsLimit, s.directory.Experts)))
	r.Get("/partners", paged(listing("partners", DefaultPartnersLimit, s.directory.Partners)))
	r.Get("/community", paged(listing("community", DefaultCommunityLimit, s.directory.Community)))

	r.Get("/events", none(s.events))
	r.Post("/events/join", handler.Wrap(handler.HandlerFunc[handler.Context, joinEventRequest](s.joinEvent),
		handler.WithBinders[handler.Context, joinEventRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, joinEventRequest](errorHandler),
	))
}
