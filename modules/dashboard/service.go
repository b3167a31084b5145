package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/netandconnect/portal/svc/directory"
	"github.com/netandconnect/portal/svc/member"
)

// Ledger is the token ledger the API moves balances through.
type Ledger interface {
	Balance(ctx context.Context, email string) (*member.Member, error)
	Spend(ctx context.Context, email string, amount int, reason string) (*member.Member, member.Transaction, error)
	Add(ctx context.Context, email string, amount int, reason string) (*member.Member, member.Transaction, error)
	History(ctx context.Context, memberID string, limit int) ([]member.Transaction, error)
}

// Directory provides the listings.
type Directory interface {
	Members(ctx context.Context) directory.Result[directory.MemberCard]
	Experts(ctx context.Context) directory.Result[directory.Expert]
	Partners(ctx context.Context) directory.Result[directory.Partner]
	Community(ctx context.Context) directory.Result[directory.CommunityMember]
	UpcomingEvents(ctx context.Context) directory.Result[directory.Event]
	FindEvent(ctx context.Context, id string) (directory.Event, bool)
}

// Sessions re-issues the session cookie after the member changes.
type Sessions interface {
	RefreshSession(w http.ResponseWriter, m *member.Member) error
}

// Service implements the dashboard handlers.
type Service struct {
	cfg       Config
	ledger    Ledger
	directory Directory
	sessions  Sessions
	log       *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(cfg Config, ledger Ledger, dir Directory, sessions Sessions, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg.withDefaults(),
		ledger:    ledger,
		directory: dir,
		sessions:  sessions,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
