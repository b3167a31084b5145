package dashboard

import (
	"errors"
	"strings"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/validator"
	"github.com/netandconnect/portal/svc/directory"
	"github.com/netandconnect/portal/svc/member"
)

type joinEventRequest struct {
	EventID string `json:"eventId"`
}

type joinEventResponse struct {
	Success     bool               `json:"success"`
	Event       directory.Event    `json:"event"`
	User        *member.Member     `json:"user"`
	Transaction member.Transaction `json:"transaction"`
}

// joinEvent spends the configured event cost to register for an upcoming
// event.
func (s *Service) joinEvent(ctx handler.Context, req joinEventRequest) handler.Response {
	email, err := sessionEmail(ctx)
	if err != nil {
		return handler.Error(err)
	}

	id := strings.TrimSpace(req.EventID)
	if err := validator.Apply(
		validator.RequiredString("eventId", id),
		validator.MaxLenString("eventId", id, maxEventIDLength),
	); err != nil {
		return handler.Error(errors.Join(ErrInvalidEventID, err))
	}
	event, ok := s.directory.FindEvent(ctx, id)
	if !ok {
		return handler.Error(ErrEventNotFound)
	}

	m, tx, err := s.ledger.Spend(ctx, email, s.cfg.EventCost, "event:"+event.ID)
	if err != nil {
		return handler.Error(ledgerError(err))
	}
	s.refresh(ctx, m)

	s.log.InfoContext(ctx, "member joined event",
		logger.Component("dashboard"),
		logger.Event("event.joined"),
		logger.MemberID(m.ID),
	)
	return handler.JSON(joinEventResponse{Success: true, Event: event, User: m, Transaction: tx})
}
