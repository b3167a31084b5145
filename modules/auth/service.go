package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/netandconnect/portal/pkg/cookie"
	"github.com/netandconnect/portal/pkg/email"
	"github.com/netandconnect/portal/pkg/email/templates"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/replay"
	"github.com/netandconnect/portal/pkg/token"
	"github.com/netandconnect/portal/svc/member"
)

// Service runs the magic-link flow and manages the session cookie.
type Service struct {
	cfg     Config
	signer  *token.Signer
	guard   *replay.Guard
	members member.Repository
	mailer  email.EmailSender
	cookies *cookie.Manager
	devMode bool
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDevMode makes RequestLink return the link to the caller. Emails are
// still handed to the sender, which in development writes them to disk.
func WithDevMode(dev bool) Option {
	return func(s *Service) {
		s.devMode = dev
	}
}

// WithCookieManager replaces the default cookie manager.
func WithCookieManager(m *cookie.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.cookies = m
		}
	}
}

// NewService wires the flow. guard, members and mailer are required.
func NewService(cfg Config, signer *token.Signer, guard *replay.Guard, members member.Repository, mailer email.EmailSender, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg.withDefaults(),
		signer:  signer,
		guard:   guard,
		members: members,
		mailer:  mailer,
		cookies: cookie.New(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LinkResult is the outcome of RequestLink. DevLink is set only in
// development mode.
type LinkResult struct {
	DevLink string
}

// RequestLink issues a magic link for addr and emails it in the locale
// matching acceptLanguage.
func (s *Service) RequestLink(ctx context.Context, addr string, locale language.Tag) (LinkResult, error) {
	tok, err := s.signer.IssueMagicLink(addr, s.cfg.MagicLinkTTL)
	if err != nil {
		return LinkResult{}, fmt.Errorf("issue magic link: %w", err)
	}
	link := s.verifyURL(tok)

	params := templates.MagicLinkParams{Link: link, TTL: s.cfg.MagicLinkTTL, Locale: locale}
	html, err := templates.Render(ctx, templates.MagicLink(params))
	if err != nil {
		return LinkResult{}, fmt.Errorf("render magic link email: %w", err)
	}

	err = s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   addr,
		Subject:  templates.MagicLinkSubject(params),
		BodyHTML: html,
		BodyText: templates.MagicLinkPlainText(params),
		Tag:      "magic-link",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to send magic link",
			logger.Component("auth"),
			logger.Email(addr),
			logger.Error(err),
		)
		if !s.devMode {
			return LinkResult{}, errors.Join(ErrSendFailed, err)
		}
	}

	s.log.InfoContext(ctx, "magic link issued",
		logger.Component("auth"),
		logger.Event("magic_link.sent"),
		logger.Email(addr),
		slog.Bool("dev_mode", s.devMode),
	)

	if s.devMode {
		return LinkResult{DevLink: link}, nil
	}
	return LinkResult{}, nil
}

// Session is a freshly issued session token with the member it was built
// from. Member is nil when the directory could not be reached.
type Session struct {
	Token  string
	Email  string
	Member *member.Member
}

// Verify consumes a magic link token and issues a session. Errors are
// ErrMissingToken, ErrLinkExpired or ErrLinkInvalid.
func (s *Service) Verify(ctx context.Context, raw string) (Session, error) {
	if raw == "" {
		return Session{}, ErrMissingToken
	}

	claims, err := s.signer.VerifyMagicLink(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return Session{}, errors.Join(ErrLinkExpired, err)
		}
		return Session{}, errors.Join(ErrLinkInvalid, err)
	}

	if err := s.guard.Use(ctx, token.Signature(raw), claims.ExpiresAt()); err != nil {
		if errors.Is(err, replay.ErrStoreFailure) {
			s.log.ErrorContext(ctx, "replay guard unavailable",
				logger.Component("auth"),
				logger.Error(err),
			)
		}
		return Session{}, errors.Join(ErrLinkInvalid, err)
	}

	m, created, err := member.GetOrCreate(ctx, s.members, claims.Email)
	if err != nil {
		s.log.WarnContext(ctx, "member lookup failed, issuing session without profile",
			logger.Component("auth"),
			logger.Email(claims.Email),
			logger.Error(err),
		)
		m = nil
	} else if created {
		s.log.InfoContext(ctx, "member registered",
			logger.Component("auth"),
			logger.Event("member.created"),
			logger.MemberID(m.ID),
		)
	}

	var userData *token.UserData
	if m != nil {
		userData = m.UserData()
	}
	sessionToken, err := s.signer.IssueSession(claims.Email, userData, s.cfg.SessionTTL)
	if err != nil {
		return Session{}, fmt.Errorf("issue session: %w", err)
	}

	s.log.InfoContext(ctx, "member signed in",
		logger.Component("auth"),
		logger.Event("session.created"),
		logger.Email(claims.Email),
	)
	return Session{Token: sessionToken, Email: claims.Email, Member: m}, nil
}

// Authenticate verifies the session cookie of r.
func (s *Service) Authenticate(r *http.Request) (token.SessionClaims, error) {
	raw, err := s.cookies.Get(r, s.cfg.CookieName)
	if err != nil {
		return token.SessionClaims{}, ErrUnauthorized
	}
	claims, err := s.signer.VerifySession(raw)
	if err != nil {
		return token.SessionClaims{}, errors.Join(ErrInvalidAuthToken, err)
	}
	return claims, nil
}

// SetSessionCookie writes the session cookie.
func (s *Service) SetSessionCookie(w http.ResponseWriter, sessionToken string) {
	s.cookies.Set(w, s.cfg.CookieName, sessionToken, cookie.WithTTL(s.cfg.SessionTTL))
}

// RefreshSession re-issues the session cookie with a new member snapshot.
func (s *Service) RefreshSession(w http.ResponseWriter, m *member.Member) error {
	tok, err := s.signer.IssueSession(m.Email, m.UserData(), s.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	s.SetSessionCookie(w, tok)
	return nil
}

// ClearSession expires the session cookie.
func (s *Service) ClearSession(w http.ResponseWriter) {
	s.cookies.Delete(w, s.cfg.CookieName)
}

func (s *Service) verifyURL(tok string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/api/auth/verify?token=" + url.QueryEscape(tok)
}

func (s *Service) signInURL(err error) string {
	return s.cfg.SignInPath + "?error=" + signInErrorCode(err)
}
