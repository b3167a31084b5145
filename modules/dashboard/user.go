package dashboard

import (
	"errors"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/modules/auth"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/validator"
	"github.com/netandconnect/portal/svc/member"
)

var tokenActions = []string{"spend", "add", "balance"}

type profileResponse struct {
	Success bool        `json:"success"`
	User    profileUser `json:"user"`
}

type profileUser struct {
	Email    string         `json:"email"`
	UserData *member.Member `json:"userData"`
}

type userResponse struct {
	Success     bool                `json:"success"`
	User        *member.Member      `json:"user"`
	Transaction *member.Transaction `json:"transaction,omitempty"`
}

// tokensRequest takes the action from the query and the amount from the
// body only.
type tokensRequest struct {
	Action string `query:"action" json:"-"`
	Amount int    `query:"-" json:"amount"`
}

type historyRequest struct {
	Limit int `query:"limit"`
}

type historyResponse struct {
	Success      bool                 `json:"success"`
	Transactions []member.Transaction `json:"transactions"`
}

// sessionEmail returns the email of the signed-in member. RequireSession
// guarantees the claims; their absence is a wiring error.
func sessionEmail(ctx handler.Context) (string, error) {
	claims, ok := auth.GetSessionFromContext(ctx)
	if !ok {
		return "", auth.ErrUnauthorized
	}
	return claims.Email, nil
}

func (s *Service) profile(ctx handler.Context, _ struct{}) handler.Response {
	email, err := sessionEmail(ctx)
	if err != nil {
		return handler.Error(err)
	}

	m, err := s.ledger.Balance(ctx, email)
	if err != nil {
		return handler.Error(ledgerError(err))
	}
	s.refresh(ctx, m)

	return handler.JSON(profileResponse{
		Success: true,
		User:    profileUser{Email: email, UserData: m},
	})
}

func (s *Service) balance(ctx handler.Context, _ struct{}) handler.Response {
	email, err := sessionEmail(ctx)
	if err != nil {
		return handler.Error(err)
	}
	m, err := s.ledger.Balance(ctx, email)
	if err != nil {
		return handler.Error(ledgerError(err))
	}
	return handler.JSON(userResponse{Success: true, User: m})
}

func (s *Service) tokens(ctx handler.Context, req tokensRequest) handler.Response {
	email, err := sessionEmail(ctx)
	if err != nil {
		return handler.Error(err)
	}

	if err := validator.Apply(validator.OneOfString("action", req.Action, tokenActions)); err != nil {
		return handler.Error(errors.Join(ErrInvalidAction, err))
	}
	if req.Action != "balance" {
		if err := validator.Apply(
			validator.Positive("amount", req.Amount),
			validator.MaxNum("amount", req.Amount, maxTokenAmount),
		); err != nil {
			return handler.Error(errors.Join(ErrInvalidAmount, err))
		}
	}

	var (
		m  *member.Member
		tx member.Transaction
	)
	switch req.Action {
	case "spend":
		m, tx, err = s.ledger.Spend(ctx, email, req.Amount, "dashboard")
	case "add":
		m, tx, err = s.ledger.Add(ctx, email, req.Amount, "dashboard")
	case "balance":
		return s.balance(ctx, struct{}{})
	default:
		return handler.Error(ErrInvalidAction)
	}
	if err != nil {
		return handler.Error(ledgerError(err))
	}

	s.refresh(ctx, m)
	return handler.JSON(userResponse{Success: true, User: m, Transaction: &tx})
}

func (s *Service) history(ctx handler.Context, req historyRequest) handler.Response {
	email, err := sessionEmail(ctx)
	if err != nil {
		return handler.Error(err)
	}
	m, err := s.ledger.Balance(ctx, email)
	if err != nil {
		return handler.Error(ledgerError(err))
	}

	if err := validator.Apply(validator.MinNum("limit", req.Limit, 0)); err != nil {
		return handler.Error(errors.Join(handler.ErrBadRequest, err))
	}
	limit := req.Limit
	if limit == 0 {
		limit = s.cfg.HistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	txs, err := s.ledger.History(ctx, m.ID, limit)
	if err != nil {
		return handler.Error(err)
	}
	if txs == nil {
		txs = []member.Transaction{}
	}
	return handler.JSON(historyResponse{Success: true, Transactions: txs})
}

// refresh re-issues the session cookie so its cached profile follows the
// balance. Failure only costs freshness.
func (s *Service) refresh(ctx handler.Context, m *member.Member) {
	if s.sessions == nil || m == nil {
		return
	}
	if err := s.sessions.RefreshSession(ctx.ResponseWriter(), m); err != nil {
		s.log.WarnContext(ctx, "failed to refresh session cookie",
			logger.Component("dashboard"),
			logger.MemberID(m.ID),
			logger.Error(err),
		)
	}
}

