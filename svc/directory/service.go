package directory

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/netandconnect/portal/pkg/airtable"
	"github.com/netandconnect/portal/pkg/cache"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/luma"
)

// ErrSourceUnavailable marks a listing whose source is not configured.
var ErrSourceUnavailable = errors.New("directory: source not configured")

// Records is the part of *airtable.Client the service reads from.
type Records interface {
	ListAll(ctx context.Context, table string, params airtable.ListParams) ([]airtable.Record, error)
	GetRecord(ctx context.Context, table, id string) (*airtable.Record, error)
}

// Events is the part of *luma.Client the service reads from.
type Events interface {
	ListEvents(ctx context.Context, params luma.ListEventsParams) ([]luma.Event, error)
}

// Service builds dashboard listings. Safe for concurrent use.
type Service struct {
	records   Records
	events    Events
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
	companies *cache.LRU[string, string]

	collMu sync.Mutex
	coll   *collate.Collator
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a service. records and events may be nil, in which case the
// matching listings always fall back.
func New(records Records, events Events, cfg Config, opts ...Option) *Service {
	cfg = cfg.withDefaults()
	s := &Service{
		records: records,
		events:  events,
		cfg:     cfg,
		log:     logger.Discard(),
		now:     time.Now,
		coll:    collate.New(language.French, collate.Loose),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.companies = cache.NewLRU[string, string](cfg.CompanyCacheSize, cfg.CompanyCacheTTL, cache.WithClock(s.now))
	return s
}

// Members lists club members sorted by full name, with company names
// resolved from the linked company record.
func (s *Service) Members(ctx context.Context) Result[MemberCard] {
	recs, err := s.listAll(ctx, s.cfg.MembersTable, "Nom complet")
	if err != nil {
		s.fallingBack(ctx, "members", err)
		items := fallbackMembers()
		sortByName(s, items, func(m MemberCard) string { return m.Name })
		return Result[MemberCard]{Items: items, Fallback: true}
	}

	companies := s.resolveCompanies(ctx, recs, "Entreprise")
	items := make([]MemberCard, len(recs))
	for i, r := range recs {
		items[i] = MemberCard{
			ID:       r.ID,
			Name:     r.Text("Nom complet"),
			Email:    r.Text("Email"),
			Phone:    r.Text("Téléphone"),
			Company:  companies[i],
			Role:     r.Text("Fonction"),
			Tokens:   r.Int("Tokens restants"),
			LinkedIn: r.Text("LinkedIn"),
			Image:    r.Text("Image"),
		}
	}
	return Result[MemberCard]{Items: items}
}

// Experts lists the expert directory. There is no placeholder data: a
// failing source yields an empty fallback result.
func (s *Service) Experts(ctx context.Context) Result[Expert] {
	recs, err := s.listAll(ctx, s.cfg.ExpertsTable, "id")
	if err != nil {
		s.fallingBack(ctx, "experts", err)
		return Result[Expert]{Items: []Expert{}, Fallback: true}
	}

	items := make([]Expert, len(recs))
	for i, r := range recs {
		items[i] = Expert{
			ID:          r.ID,
			Name:        r.Text("name"),
			Phone:       r.Text("phone"),
			Email:       r.Text("email"),
			Description: r.Text("description"),
			Image:       r.Text("image"),
			Title:       r.Text("title"),
			Website:     r.Text("website"),
		}
	}
	return Result[Expert]{Items: items}
}

// Partners lists partner brands.
func (s *Service) Partners(ctx context.Context) Result[Partner] {
	recs, err := s.listAll(ctx, s.cfg.PartnersTable, "id")
	if err != nil {
		s.fallingBack(ctx, "partners", err)
		items := fallbackPartners()
		sortByName(s, items, func(p Partner) string { return p.Title })
		return Result[Partner]{Items: items, Fallback: true}
	}

	items := make([]Partner, len(recs))
	for i, r := range recs {
		items[i] = Partner{ID: r.ID, Title: r.Text("title"), Image: r.Text("image")}
	}
	return Result[Partner]{Items: items}
}

// Community lists the "Le cercle" members.
func (s *Service) Community(ctx context.Context) Result[CommunityMember] {
	recs, err := s.listAll(ctx, s.cfg.CommunityTable, "id")
	if err != nil {
		s.fallingBack(ctx, "community", err)
		return Result[CommunityMember]{Items: []CommunityMember{}, Fallback: true}
	}

	companies := s.resolveCompanies(ctx, recs, "enterprise")
	items := make([]CommunityMember, len(recs))
	for i, r := range recs {
		items[i] = CommunityMember{
			ID:      r.ID,
			Name:    r.Text("name"),
			Email:   r.Text("email"),
			Phone:   r.Text("phone"),
			Title:   r.Text("title"),
			Company: companies[i],
			Image:   r.Text("image"),
		}
	}
	return Result[CommunityMember]{Items: items}
}

// UpcomingEvents returns events starting at or after now, soonest first.
func (s *Service) UpcomingEvents(ctx context.Context) Result[Event] {
	now := s.now()

	var (
		items    []Event
		fallback bool
	)
	if s.events == nil {
		s.fallingBack(ctx, "events", ErrSourceUnavailable)
		items, fallback = fallbackEvents(), true
	} else if evs, err := s.events.ListEvents(ctx, luma.ListEventsParams{After: now, SortDirection: "asc"}); err != nil {
		s.fallingBack(ctx, "events", err)
		items, fallback = fallbackEvents(), true
	} else {
		items = make([]Event, 0, len(evs))
		for _, e := range evs {
			loc := e.Location
			if loc == "" {
				loc = "TBD"
			}
			items = append(items, Event{ID: e.ID, Title: e.Title, Start: e.StartAt, Location: loc, URL: e.URL, CoverURL: e.CoverURL})
		}
	}

	items = slices.DeleteFunc(items, func(e Event) bool { return e.Start.Before(now) })
	slices.SortStableFunc(items, func(a, b Event) int { return a.Start.Compare(b.Start) })
	return Result[Event]{Items: items, Fallback: fallback}
}

// FindEvent looks an upcoming event up by id.
func (s *Service) FindEvent(ctx context.Context, id string) (Event, bool) {
	for _, e := range s.UpcomingEvents(ctx).Items {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

func (s *Service) listAll(ctx context.Context, table, sortField string) ([]airtable.Record, error) {
	if s.records == nil {
		return nil, ErrSourceUnavailable
	}
	return s.records.ListAll(ctx, table, airtable.ListParams{
		PageSize: 100,
		Sort:     []airtable.Sort{{Field: sortField, Direction: airtable.Asc}},
	})
}

// resolveCompanies returns the company name of each record's first linked
// company, "" when there is none or the lookup fails.
func (s *Service) resolveCompanies(ctx context.Context, recs []airtable.Record, field string) []string {
	names := make([]string, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.LookupWorkers)
	for i, r := range recs {
		links := r.Links(field)
		if len(links) == 0 {
			continue
		}
		g.Go(func() error {
			names[i] = s.companyName(gctx, links[0])
			return nil
		})
	}
	_ = g.Wait()
	return names
}

func (s *Service) companyName(ctx context.Context, id string) string {
	if name, ok := s.companies.Get(id); ok {
		return name
	}
	rec, err := s.records.GetRecord(ctx, s.cfg.CompaniesTable, id)
	if err != nil {
		s.log.WarnContext(ctx, "failed to fetch company",
			logger.Component("directory"),
			slog.String("company_id", id),
			logger.Error(err),
		)
		return ""
	}
	name := rec.Text("Company Name")
	s.companies.Set(id, name)
	return name
}

func (s *Service) fallingBack(ctx context.Context, listing string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, ErrSourceUnavailable) {
		level = slog.LevelDebug
	}
	s.log.Log(ctx, level, "serving fallback listing",
		logger.Component("directory"),
		slog.String("listing", listing),
		logger.Error(err),
	)
}

// sortByName orders items alphabetically the French way, ignoring case and
// accents.
func sortByName[T any](s *Service, items []T, key func(T) string) {
	s.collMu.Lock()
	defer s.collMu.Unlock()
	slices.SortStableFunc(items, func(a, b T) int {
		if c := s.coll.CompareString(key(a), key(b)); c != 0 {
			return c
		}
		return cmp.Compare(key(a), key(b))
	})
}
