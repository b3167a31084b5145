package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/pkg/binder"
)

type linkRequest struct {
	Email  string `json:"email"`
	Amount int    `json:"amount"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		contentType string
		want        linkRequest
		err         error
	}{
		{name: "valid", body: `{"email":"a@b.co","amount":3}`, contentType: "application/json", want: linkRequest{Email: "a@b.co", Amount: 3}},
		{name: "charset", body: `{"email":"a@b.co"}`, contentType: "application/json; charset=utf-8", want: linkRequest{Email: "a@b.co"}},
		{name: "no content type", body: `{"email":"a@b.co"}`, want: linkRequest{Email: "a@b.co"}},
		{name: "unknown fields ignored", body: `{"email":"a@b.co","extra":true}`, contentType: "application/json", want: linkRequest{Email: "a@b.co"}},
		{name: "empty body", body: "", contentType: "application/json", err: binder.ErrBinderNotApplicable},
		{name: "form body", body: "email=a", contentType: "application/x-www-form-urlencoded", err: binder.ErrUnsupportedMediaType},
		{name: "malformed", body: `{"email":`, contentType: "application/json", err: binder.ErrFailedToParseJSON},
		{name: "wrong type", body: `{"amount":"three"}`, contentType: "application/json", err: binder.ErrFailedToParseJSON},
		{name: "too large", body: `{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, contentType: "application/json", err: binder.ErrFailedToParseJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/auth/request-link", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			var got linkRequest
			err := binder.JSON()(r, &got)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type pageRequest struct {
	Page    int     `query:"page"`
	Limit   int     `query:"limit"`
	Action  string  `query:"action"`
	Debug   bool    `query:"debug"`
	Ratio   float64 `query:"ratio"`
	Cursor  *string `query:"cursor"`
	Ignored string  `query:"-"`
	Token   string
}

func TestQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/members?page=2&limit=9&action=spend&debug=yes&ratio=0.5&cursor=abc&Ignored=x&token=t", nil)
	var got pageRequest
	require.NoError(t, binder.Query()(r, &got))

	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 9, got.Limit)
	assert.Equal(t, "spend", got.Action)
	assert.True(t, got.Debug)
	assert.InDelta(t, 0.5, got.Ratio, 1e-9)
	require.NotNil(t, got.Cursor)
	assert.Equal(t, "abc", *got.Cursor)
	assert.Empty(t, got.Ignored)
	assert.Equal(t, "t", got.Token)
}

func TestQuery_Errors(t *testing.T) {
	t.Parallel()

	var got pageRequest
	err := binder.Query()(httptest.NewRequest(http.MethodGet, "/api/members?page=two", nil), &got)
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	assert.Contains(t, err.Error(), "page")

	err = binder.Query()(httptest.NewRequest(http.MethodGet, "/api/members", nil), &got)
	assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)

	var notStruct int
	err = binder.Query()(httptest.NewRequest(http.MethodGet, "/x?a=1", nil), &notStruct)
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
}
