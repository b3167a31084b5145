package dashboard

import (
	"context"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/svc/directory"
)

type pageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

type listingResponse map[string]any

// listing pages through fetch and renders it under key, with the
// pagination block and a fallback flag when placeholder data was served.
func listing[T any](key string, defaultLimit int, fetch func(context.Context) directory.Result[T]) handler.HandlerFunc[handler.Context, pageRequest] {
	return func(ctx handler.Context, req pageRequest) handler.Response {
		limit := req.Limit
		if limit <= 0 {
			limit = defaultLimit
		}
		limit = min(limit, directory.MaxPageLimit)

		res := fetch(ctx)
		page := directory.Paginate(res.Items, req.Page, limit)

		body := listingResponse{
			key:          page.Items,
			"pagination": page.Pagination,
		}
		if res.Fallback {
			body["fallback"] = true
		}
		return handler.JSON(body)
	}
}

type eventsResponse struct {
	Events   []directory.Event `json:"events"`
	Fallback bool              `json:"fallback,omitempty"`
}

func (s *Service) events(ctx handler.Context, _ struct{}) handler.Response {
	res := s.directory.UpcomingEvents(ctx)
	items := res.Items
	if items == nil {
		items = []directory.Event{}
	}
	return handler.JSON(eventsResponse{Events: items, Fallback: res.Fallback})
}
