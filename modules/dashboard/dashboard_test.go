package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/handler"
	"github.com/netandconnect/portal/modules/auth"
	"github.com/netandconnect/portal/modules/dashboard"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/token"
	"github.com/netandconnect/portal/svc/directory"
	"github.com/netandconnect/portal/svc/member"
)

const memberEmail = "alice@example.com"

var testNow = time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

type recordingSessions struct {
	mu        sync.Mutex
	refreshed []member.Member
}

func (s *recordingSessions) RefreshSession(_ http.ResponseWriter, m *member.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshed = append(s.refreshed, *m)
	return nil
}

func (s *recordingSessions) last(t *testing.T) member.Member {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.refreshed)
	return s.refreshed[len(s.refreshed)-1]
}

type testEnv struct {
	repo     *member.MemoryRepository
	sessions *recordingSessions
	router   http.Handler
}

func newEnv(t *testing.T, startTokens int) *testEnv {
	t.Helper()

	repo := member.NewMemoryRepository(startTokens)
	_, err := repo.Create(context.Background(), memberEmail, "Alice Martin")
	require.NoError(t, err)

	ledger := member.NewLedger(repo, member.NewMemoryJournal(),
		member.WithLedgerLogger(logger.Discard()),
		member.WithLedgerClock(func() time.Time { return testNow }),
	)
	dir := directory.New(nil, nil, directory.Config{}, directory.WithClock(func() time.Time { return testNow }))
	sessions := &recordingSessions{}

	svc := dashboard.NewService(dashboard.Config{EventCost: 2}, ledger, dir, sessions, dashboard.WithLogger(logger.Discard()))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if email := req.Header.Get("X-Test-Email"); email != "" {
				req = req.WithContext(auth.SetSessionToContext(req.Context(), token.SessionClaims{Email: email}))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Mount("/api", svc.Router(handler.NewErrorHandler(logger.Discard())))

	return &testEnv{repo: repo, sessions: sessions, router: r}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	r.Header.Set("X-Test-Email", memberEmail)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody = handler.ErrorBody

type userBody struct {
	Success     bool                `json:"success"`
	User        member.Member       `json:"user"`
	Transaction *member.Transaction `json:"transaction"`
}

func TestProfile(t *testing.T) {
	t.Parallel()
	env := newEnv(t, 10)

	rec := env.do(t, http.MethodGet, "/api/user/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Success bool `json:"success"`
		User    struct {
			Email    string        `json:"email"`
			UserData member.Member `json:"userData"`
		} `json:"user"`
	}](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, memberEmail, body.User.Email)
	assert.Equal(t, 10, body.User.UserData.Tokens)
	assert.Equal(t, "Alice Martin", body.User.UserData.FullName)
	assert.Equal(t, 10, env.sessions.last(t).Tokens)
}

func TestProfile_UnknownMember(t *testing.T) {
	t.Parallel()
	env := newEnv(t, 10)

	r := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	r.Header.Set("X-Test-Email", "ghost@example.com")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user_not_found", decode[errorBody](t, rec).Error.Code)
}

func TestMissingSession(t *testing.T) {
	t.Parallel()
	env := newEnv(t, 10)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/tokens", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode[errorBody](t, rec).Error.Code)
}

func TestTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		body     string
		status   int
		code     string
		balance  int
		txType   member.TransactionType
		previous int
	}{
		{name: "spend", query: "?action=spend", body: `{"amount":3}`, status: http.StatusOK, balance: 7, txType: member.TransactionSpend, previous: 10},
		{name: "spend whole balance", query: "?action=spend", body: `{"amount":10}`, status: http.StatusOK, balance: 0, txType: member.TransactionSpend, previous: 10},
		{name: "add", query: "?action=add", body: `{"amount":5}`, status: http.StatusOK, balance: 15, txType: member.TransactionAdd, previous: 10},
		{name: "balance", query: "?action=balance", status: http.StatusOK, balance: 10},
		{name: "overspend", query: "?action=spend", body: `{"amount":11}`, status: http.StatusBadRequest, code: "insufficient_tokens"},
		{name: "zero amount", query: "?action=spend", body: `{"amount":0}`, status: http.StatusBadRequest, code: "invalid_amount"},
		{name: "negative amount", query: "?action=add", body: `{"amount":-2}`, status: http.StatusBadRequest, code: "invalid_amount"},
		{name: "missing amount", query: "?action=add", status: http.StatusBadRequest, code: "invalid_amount"},
		{name: "amount above limit", query: "?action=add", body: `{"amount":1001}`, status: http.StatusBadRequest, code: "invalid_amount"},
		{name: "unknown action", query: "?action=burn", body: `{"amount":1}`, status: http.StatusBadRequest, code: "invalid_action"},
		{name: "no action", status: http.StatusBadRequest, code: "invalid_action"},
		{name: "body action ignored", query: "?action=spend", body: `{"amount":3,"action":"add"}`, status: http.StatusOK, balance: 7, txType: member.TransactionSpend, previous: 10},
		{name: "query amount ignored", query: "?action=add&amount=50", body: `{"amount":1}`, status: http.StatusOK, balance: 11, txType: member.TransactionAdd, previous: 10},
		{name: "body action without query", body: `{"amount":1,"action":"add"}`, status: http.StatusBadRequest, code: "invalid_action"},
		{name: "malformed body", query: "?action=spend", body: `{"amount":`, status: http.StatusBadRequest, code: "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newEnv(t, 10)

			rec := env.do(t, http.MethodPost, "/api/user/tokens"+tt.query, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.code != "" {
				assert.Equal(t, tt.code, decode[errorBody](t, rec).Error.Code)
				m, err := env.repo.FindByEmail(context.Background(), memberEmail)
				require.NoError(t, err)
				assert.Equal(t, 10, m.Tokens)
				return
			}

			body := decode[userBody](t, rec)
			assert.True(t, body.Success)
			assert.Equal(t, tt.balance, body.User.Tokens)
			if tt.txType == "" {
				assert.Nil(t, body.Transaction)
				return
			}
			require.NotNil(t, body.Transaction)
			assert.Equal(t, tt.txType, body.Transaction.Type)
			assert.Equal(t, tt.previous, body.Transaction.PreviousBalance)
			assert.Equal(t, tt.balance, body.Transaction.NewBalance)
			assert.Equal(t, tt.balance, env.sessions.last(t).Tokens)
		})
	}
}

func TestTokens_GetAndHistory(t *testing.T) {
	t.Parallel()
	env := newEnv(t, 10)

	rec := env.do(t, http.MethodGet, "/api/user/tokens", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decode[userBody](t, rec).User.Tokens)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/user/tokens?action=spend", `{"amount":2}`).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/user/tokens?action=add", `{"amount":4}`).Code)

	rec = env.do(t, http.MethodGet, "/api/user/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[struct {
		Transactions []member.Transaction `json:"transactions"`
	}](t, rec)
	require.Len(t, history.Transactions, 2)
	assert.Equal(t, member.TransactionAdd, history.Transactions[0].Type)
	assert.Equal(t, 12, history.Transactions[0].NewBalance)

	rec = env.do(t, http.MethodGet, "/api/user/transactions?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[struct {
		Transactions []member.Transaction `json:"transactions"`
	}](t, rec).Transactions, 1)

	rec = env.do(t, http.MethodGet, "/api/user/transactions?limit=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decode[errorBody](t, rec).Error.Code)
}

type listingBody struct {
	Pagination directory.Pagination `json:"pagination"`
	Fallback   bool                 `json:"fallback"`
}

func TestListings_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		key     string
		items   int
		total   int
		page    int
		limit   int
		pages   int
		hasNext bool
		hasPrev bool
	}{
		{name: "members default limit", path: "/api/members", key: "members", items: 3, total: 3, page: 1, limit: 9, pages: 1},
		{name: "partners second page", path: "/api/partners?page=2&limit=3", key: "partners", items: 3, total: 8, page: 2, limit: 3, pages: 3, hasNext: true, hasPrev: true},
		{name: "partners last page", path: "/api/partners?page=3&limit=3", key: "partners", items: 2, total: 8, page: 3, limit: 3, pages: 3, hasPrev: true},
		{name: "partners page clamped", path: "/api/partners?page=0", key: "partners", items: 8, total: 8, page: 1, limit: 8, pages: 1},
		{name: "members huge limit", path: "/api/members?limit=9223372036854775807", key: "members", items: 3, total: 3, page: 1, limit: 100, pages: 1},
		{name: "members huge limit second page", path: "/api/members?page=2&limit=9223372036854775807", key: "members", items: 0, total: 3, page: 2, limit: 100, pages: 1, hasPrev: true},
		{name: "experts empty", path: "/api/experts", key: "experts", items: 0, total: 0, page: 1, limit: 6, pages: 0},
		{name: "community empty", path: "/api/community", key: "community", items: 0, total: 0, page: 1, limit: 8, pages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newEnv(t, 10)

			rec := env.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode[listingBody](t, rec)
			assert.True(t, body.Fallback)
			assert.Equal(t, directory.Pagination{
				CurrentPage: tt.page,
				TotalPages:  tt.pages,
				TotalCount:  tt.total,
				HasNextPage: tt.hasNext,
				HasPrevPage: tt.hasPrev,
				Limit:       tt.limit,
			}, body.Pagination)

			raw := decode[map[string]json.RawMessage](t, rec)
			require.Contains(t, raw, tt.key)
			var items []json.RawMessage
			require.NoError(t, json.Unmarshal(raw[tt.key], &items))
			assert.NotNil(t, items)
			assert.Len(t, items, tt.items)
		})
	}
}

func TestEvents(t *testing.T) {
	t.Parallel()
	env := newEnv(t, 10)

	rec := env.do(t, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Events   []directory.Event `json:"events"`
		Fallback bool              `json:"fallback"`
	}](t, rec)
	assert.True(t, body.Fallback)
	require.Len(t, body.Events, 5)
	assert.Equal(t, "e3", body.Events[0].ID)
	for _, e := range body.Events {
		assert.False(t, e.Start.Before(testNow), e.ID)
	}
}

func TestJoinEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start      int
		body       string
		status     int
		code       string
		newBalance int
	}{
		{name: "joins upcoming event", start: 10, body: `{"eventId":"e3"}`, status: http.StatusOK, newBalance: 8},
		{name: "past event", start: 10, body: `{"eventId":"e1"}`, status: http.StatusNotFound, code: "event_not_found"},
		{name: "unknown event", start: 10, body: `{"eventId":"nope"}`, status: http.StatusNotFound, code: "event_not_found"},
		{name: "missing id", start: 10, body: `{}`, status: http.StatusBadRequest, code: "invalid_event"},
		{name: "oversized id", start: 10, body: `{"eventId":"` + strings.Repeat("x", 129) + `"}`, status: http.StatusBadRequest, code: "invalid_event"},
		{name: "not enough tokens", start: 1, body: `{"eventId":"e4"}`, status: http.StatusBadRequest, code: "insufficient_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newEnv(t, tt.start)

			rec := env.do(t, http.MethodPost, "/api/events/join", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decode[errorBody](t, rec).Error.Code)
				return
			}

			body := decode[struct {
				Success     bool               `json:"success"`
				Event       directory.Event    `json:"event"`
				User        member.Member      `json:"user"`
				Transaction member.Transaction `json:"transaction"`
			}](t, rec)
			assert.True(t, body.Success)
			assert.Equal(t, "e3", body.Event.ID)
			assert.Equal(t, tt.newBalance, body.User.Tokens)
			assert.Equal(t, 2, body.Transaction.Amount)
			assert.Equal(t, "event:e3", body.Transaction.Reason)
		})
	}
}
