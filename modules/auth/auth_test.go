package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/modules/auth"
	"github.com/netandconnect/portal/pkg/email"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/ratelimit"
	"github.com/netandconnect/portal/pkg/replay"
	"github.com/netandconnect/portal/pkg/token"
	"github.com/netandconnect/portal/svc/member"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

type recordingMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	err  error
}

func (m *recordingMailer) SendEmail(_ context.Context, p email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, p)
	return m.err
}

func (m *recordingMailer) last(t *testing.T) email.SendEmailParams {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

type brokenRepository struct{}

func (brokenRepository) FindByEmail(context.Context, string) (*member.Member, error) {
	return nil, member.ErrRepository
}

func (brokenRepository) Create(context.Context, string, string) (*member.Member, error) {
	return nil, member.ErrRepository
}

func (brokenRepository) UpdateTokens(context.Context, string, int) (*member.Member, error) {
	return nil, member.ErrRepository
}

type testEnv struct {
	svc     *auth.Service
	signer  *token.Signer
	members member.Repository
	mailer  *recordingMailer
	router  http.Handler
}

type envOption func(*envConfig)

type envConfig struct {
	dev     bool
	members member.Repository
	limiter *ratelimit.Limiter
	mailErr error
}

func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	ec := &envConfig{dev: true, members: member.NewMemoryRepository(member.DefaultTokens)}
	for _, opt := range opts {
		opt(ec)
	}

	clock := func() time.Time { return testNow }
	signer := token.MustNewSigner(testSecret, token.WithClock(clock))
	store := replay.NewMemoryStore(replay.WithMemoryClock(clock))
	t.Cleanup(func() { _ = store.Close() })
	guard := replay.NewGuard(store, replay.WithGuardClock(clock))
	mailer := &recordingMailer{err: ec.mailErr}

	svc := auth.NewService(auth.Config{BaseURL: "https://portal.example/"}, signer, guard, ec.members, mailer,
		auth.WithDevMode(ec.dev),
		auth.WithLogger(logger.Discard()),
	)

	return &testEnv{
		svc:     svc,
		signer:  signer,
		members: ec.members,
		mailer:  mailer,
		router: svc.Router(auth.RouterOptions{
			ErrorHandler: handler.NewErrorHandler(logger.Discard()),
			Limiter:      ec.limiter,
		}),
	}
}

func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func postJSON(path, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.DefaultCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", auth.DefaultCookieName)
	return nil
}

func TestRequestLink_DevMode(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	rec := env.do(postJSON("/request-link", `{"email":"  Alice@Example.com "}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OK      bool   `json:"ok"`
		DevLink string `json:"dev_link"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	require.True(t, strings.HasPrefix(body.DevLink, "https://portal.example/api/auth/verify?token="), body.DevLink)

	link, err := url.Parse(body.DevLink)
	require.NoError(t, err)
	claims, err := env.signer.VerifyMagicLink(link.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, testNow.Add(auth.DefaultMagicLinkTTL).UnixMilli(), claims.Exp)

	sent := env.mailer.last(t)
	assert.Equal(t, "alice@example.com", sent.SendTo)
	assert.Equal(t, "Votre lien magique pour vous connecter", sent.Subject)
	assert.Contains(t, sent.BodyHTML, "20 minutes")
	assert.Equal(t, "magic-link", sent.Tag)
}

func TestRequestLink_Production(t *testing.T) {
	t.Parallel()
	env := newEnv(t, func(c *envConfig) { c.dev = false })

	r := postJSON("/request-link", `{"email":"bob@example.com"}`)
	r.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	rec := env.do(r)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "dev_link")
	assert.Equal(t, "Your magic link to sign in", env.mailer.last(t).Subject)
}

func TestRequestLink_InvalidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing", body: `{}`},
		{name: "no at sign", body: `{"email":"alice.example.com"}`},
		{name: "no domain dot", body: `{"email":"alice@localhost"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newEnv(t)

			rec := env.do(postJSON("/request-link", tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid_email", errorCode(t, rec))
			assert.Empty(t, env.mailer.sent)
		})
	}
}

func TestRequestLink_SendFailure(t *testing.T) {
	t.Parallel()

	env := newEnv(t, func(c *envConfig) {
		c.dev = false
		c.mailErr = email.ErrFailedToSendEmail
	})
	rec := env.do(postJSON("/request-link", `{"email":"bob@example.com"}`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "email_send_failed", errorCode(t, rec))

	dev := newEnv(t, func(c *envConfig) { c.mailErr = errors.New("disk full") })
	rec = dev.do(postJSON("/request-link", `{"email":"bob@example.com"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dev_link")
}

func TestRequestLink_RateLimited(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(ratelimit.Config{Requests: 1, Window: time.Hour, Burst: 1})
	require.NoError(t, err)
	env := newEnv(t, func(c *envConfig) { c.limiter = limiter })

	first := postJSON("/request-link", `{"email":"bob@example.com"}`)
	first.RemoteAddr = "203.0.113.7:1234"
	assert.Equal(t, http.StatusOK, env.do(first).Code)

	second := postJSON("/request-link", `{"email":"bob@example.com"}`)
	second.RemoteAddr = "203.0.113.7:5678"
	rec := env.do(second)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "too_many_requests", body.Error.Code)
}

func TestVerify_Success(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	tok, err := env.signer.IssueMagicLink("carol@example.com", 20*time.Minute)
	require.NoError(t, err)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/verify?token="+url.QueryEscape(tok), nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int((24 * time.Hour).Seconds()), c.MaxAge)

	claims, err := env.signer.VerifySession(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", claims.Email)
	require.NotNil(t, claims.UserData)
	assert.Equal(t, member.DefaultTokens, claims.UserData.Tokens)
	assert.Equal(t, "carol", claims.UserData.FullName)

	m, err := env.members.FindByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, m.ID, claims.UserData.ID)
}

func TestVerify_Failures(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	valid, err := env.signer.IssueMagicLink("dan@example.com", 20*time.Minute)
	require.NoError(t, err)

	earlier := token.MustNewSigner(testSecret, token.WithClock(func() time.Time { return testNow.Add(-21 * time.Minute) }))
	expired, err := earlier.IssueMagicLink("dan@example.com", 20*time.Minute)
	require.NoError(t, err)

	other := token.MustNewSigner(strings.Repeat("z", 32), token.WithClock(func() time.Time { return testNow }))
	foreign, err := other.IssueMagicLink("dan@example.com", 20*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		query    string
		location string
	}{
		{name: "missing token", query: "", location: "/sign-in?error=missing-token"},
		{name: "empty token", query: "?token=", location: "/sign-in?error=missing-token"},
		{name: "expired", query: "?token=" + url.QueryEscape(expired), location: "/sign-in?error=expired"},
		{name: "garbage", query: "?token=not-a-token", location: "/sign-in?error=invalid-token"},
		{name: "wrong secret", query: "?token=" + url.QueryEscape(foreign), location: "/sign-in?error=invalid-token"},
		{name: "tampered", query: "?token=" + url.QueryEscape("x"+valid), location: "/sign-in?error=invalid-token"},
	}

	for _, tt := range tests {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/verify"+tt.query, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, tt.name)
		assert.Equal(t, tt.location, rec.Header().Get("Location"), tt.name)
	}
}

func TestVerify_SingleUse(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	tok, err := env.signer.IssueMagicLink("erin@example.com", 20*time.Minute)
	require.NoError(t, err)
	path := "/verify?token=" + url.QueryEscape(tok)

	first := env.do(httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "/dashboard", first.Header().Get("Location"))

	second := env.do(httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "/sign-in?error=invalid-token", second.Header().Get("Location"))
	assert.Empty(t, second.Result().Cookies())
}

func TestVerify_DirectoryUnavailable(t *testing.T) {
	t.Parallel()
	env := newEnv(t, func(c *envConfig) { c.members = brokenRepository{} })

	tok, err := env.signer.IssueMagicLink("frank@example.com", 20*time.Minute)
	require.NoError(t, err)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/verify?token="+url.QueryEscape(tok), nil))
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))

	claims, err := env.signer.VerifySession(sessionCookie(t, rec).Value)
	require.NoError(t, err)
	assert.Equal(t, "frank@example.com", claims.Email)
	assert.Nil(t, claims.UserData)
}

func TestLogout(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	for _, r := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/logout", nil),
		httptest.NewRequest(http.MethodPost, "/logout", nil),
		httptest.NewRequest(http.MethodGet, "/?req=logout", nil),
	} {
		rec := env.do(r)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
		c := sessionCookie(t, rec)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func TestLegacyRoutes(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	rec := env.do(postJSON("/?req=request-link", `{"email":"gina@example.com"}`))
	assert.Equal(t, http.StatusOK, rec.Code)

	tok, err := env.signer.IssueMagicLink("gina@example.com", 20*time.Minute)
	require.NoError(t, err)
	rec = env.do(httptest.NewRequest(http.MethodGet, "/?req=verify&token="+url.QueryEscape(tok), nil))
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/?req=unknown", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", errorCode(t, rec))

	rec = env.do(postJSON("/", `{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireSession(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	var seen token.SessionClaims
	protected := env.svc.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetSessionFromContext(r.Context())
		require.True(t, ok)
		seen = claims
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(value string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		if value != "" {
			r.AddCookie(&http.Cookie{Name: auth.DefaultCookieName, Value: value})
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, r)
		return rec
	}

	rec := serve("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))

	rec = serve("forged.value")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_auth_token", errorCode(t, rec))

	valid, err := env.signer.IssueSession("hana@example.com", &token.UserData{ID: "rec1", Email: "hana@example.com", Tokens: 4}, time.Hour)
	require.NoError(t, err)
	rec = serve(valid)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "hana@example.com", seen.Email)
	require.NotNil(t, seen.UserData)
	assert.Equal(t, 4, seen.UserData.Tokens)
}

func TestRefreshSession(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	rec := httptest.NewRecorder()
	require.NoError(t, env.svc.RefreshSession(rec, &member.Member{ID: "rec9", Email: "ivy@example.com", Tokens: 7}))

	claims, err := env.signer.VerifySession(sessionCookie(t, rec).Value)
	require.NoError(t, err)
	require.NotNil(t, claims.UserData)
	assert.Equal(t, 7, claims.UserData.Tokens)
}
