package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/netandconnect/portal/modules/auth"
	"github.com/netandconnect/portal/modules/dashboard"
	"github.com/netandconnect/portal/pkg/airtable"
	"github.com/netandconnect/portal/pkg/clientip"
	"github.com/netandconnect/portal/pkg/cookie"
	"github.com/netandconnect/portal/pkg/email"
	"github.com/netandconnect/portal/pkg/httpserver"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/luma"
	"github.com/netandconnect/portal/pkg/pg"
	"github.com/netandconnect/portal/pkg/ratelimit"
	"github.com/netandconnect/portal/pkg/redis"
	"github.com/netandconnect/portal/pkg/replay"
	"github.com/netandconnect/portal/pkg/requestid"
	"github.com/netandconnect/portal/pkg/token"
	"github.com/netandconnect/portal/svc/directory"
	"github.com/netandconnect/portal/svc/member"
)

// App owns every long-lived dependency of the portal process.
type App struct {
	cfg     Config
	env     logger.Environment
	log     *slog.Logger
	handler http.Handler
	checks  []httpserver.Check
	closers []io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// New builds the application. Postgres, Redis, Airtable and Luma are used
// when configured; otherwise in-memory stores and built-in listings stand
// in for them. A missing or short AUTH_SECRET is fatal.
func New(ctx context.Context, cfg Config, log *slog.Logger) (_ *App, err error) {
	env := logger.ParseEnvironment(cfg.Env)
	if log == nil {
		log = logger.New(
			logger.WithEnvironment(env, cfg.ServiceName),
			logger.WithContextExtractors(requestid.LoggerExtractor),
		)
	}

	a := &App{cfg: cfg, env: env, log: log}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	signer, err := token.NewSigner(cfg.AuthSecret)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}

	guard, err := a.replayGuard(ctx)
	if err != nil {
		return nil, err
	}

	journal, err := a.journal(ctx)
	if err != nil {
		return nil, err
	}

	devMail := cfg.Email.IsDev()
	if devMail && env.IsProduction() {
		return nil, ErrDevEmailInProduction
	}
	mailer, err := email.NewSender(cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("email sender: %w", err)
	}

	var (
		members member.Repository
		records directory.Records
		events  directory.Events
	)
	if cfg.Airtable.Enabled() {
		client, err := airtable.New(cfg.Airtable)
		if err != nil {
			return nil, fmt.Errorf("airtable client: %w", err)
		}
		members = member.NewAirtableRepository(client, cfg.Member)
		records = client
	} else {
		log.WarnContext(ctx, "airtable not configured, members are kept in memory", logger.Component("app"))
		members = member.NewMemoryRepository(cfg.Member.DefaultTokens)
	}
	if cfg.Luma.Enabled() {
		client, err := luma.New(cfg.Luma)
		if err != nil {
			return nil, fmt.Errorf("luma client: %w", err)
		}
		events = client
	}

	ips, err := clientip.NewFromConfig(cfg.ClientIP)
	if err != nil {
		return nil, fmt.Errorf("client ip resolver: %w", err)
	}

	limiter, err := ratelimit.New(cfg.SignInLimit)
	if err != nil {
		return nil, fmt.Errorf("sign-in rate limiter: %w", err)
	}

	cookies := cookie.NewFromConfig(cfg.Cookie, cookie.WithSecure(cfg.Cookie.Secure || env.IsProduction()))

	authSvc := auth.NewService(cfg.Auth, signer, guard, members, mailer,
		auth.WithDevMode(devMail),
		auth.WithCookieManager(cookies),
		auth.WithLogger(log),
	)
	ledger := member.NewLedger(members, journal, member.WithLedgerLogger(log))
	dir := directory.New(records, events, cfg.Directory, directory.WithLogger(log))
	dashSvc := dashboard.NewService(cfg.Dashboard, ledger, dir, authSvc, dashboard.WithLogger(log))

	a.handler = a.router(authSvc, dashSvc, limiter, ips)

	log.InfoContext(ctx, "application initialized",
		logger.Component("app"),
		slog.String("env", string(env)),
		slog.String("email_provider", string(cfg.Email.ResolvedProvider())),
		slog.Bool("airtable", cfg.Airtable.Enabled()),
		slog.Bool("luma", cfg.Luma.Enabled()),
		slog.Bool("postgres", cfg.Postgres.Enabled()),
		slog.Bool("redis", cfg.Redis.Enabled()),
	)
	return a, nil
}

func (a *App) replayGuard(ctx context.Context) (*replay.Guard, error) {
	if !a.cfg.Redis.Enabled() {
		store := replay.NewMemoryStore()
		a.closers = append(a.closers, store)
		return replay.NewGuard(store), nil
	}

	client, err := redis.Connect(ctx, a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.closers = append(a.closers, client)
	a.checks = append(a.checks, redis.Healthcheck(client))
	return replay.NewGuard(replay.NewRedisStore(client)), nil
}

func (a *App) journal(ctx context.Context) (member.Journal, error) {
	if !a.cfg.Postgres.Enabled() {
		return member.NewMemoryJournal(), nil
	}

	pool, err := pg.Connect(ctx, a.cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	a.closers = append(a.closers, closerFunc(func() error { pool.Close(); return nil }))
	a.checks = append(a.checks, pg.Healthcheck(pool))

	if err := pg.Migrate(ctx, pool, member.Migrations, member.MigrationsDir, a.cfg.Postgres, a.log); err != nil {
		return nil, fmt.Errorf("postgres migrations: %w", err)
	}
	return member.NewPGJournal(pool), nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Run serves HTTP until ctx is cancelled or the process is signalled.
func (a *App) Run(ctx context.Context) error {
	srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
	return srv.Run(ctx, a.handler)
}

// Close releases stores and connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
