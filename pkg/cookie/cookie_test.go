package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/pkg/cookie"
)

func written(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestManager_SetDefaults(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	rec := httptest.NewRecorder()
	m.Set(rec, "nc_auth", "payload.sig", cookie.WithTTL(24*time.Hour))

	c := written(t, rec)
	assert.Equal(t, "nc_auth", c.Name)
	assert.Equal(t, "payload.sig", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m := cookie.NewFromConfig(cookie.Config{
		Path:     "/",
		Domain:   "portal.example",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	rec := httptest.NewRecorder()
	m.Set(rec, "a", "b")

	c := written(t, rec)
	assert.True(t, c.Secure)
	assert.Equal(t, "portal.example", c.Domain)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.True(t, c.HttpOnly)
}

func TestManager_PerCallOptionsDoNotLeak(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	m.Set(httptest.NewRecorder(), "a", "b", cookie.WithSecure(true), cookie.WithPath("/api"))

	rec := httptest.NewRecorder()
	m.Set(rec, "a", "b")
	c := written(t, rec)
	assert.False(t, c.Secure)
	assert.Equal(t, "/", c.Path)
}

func TestManager_Get(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Get(r, "nc_auth")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	r.AddCookie(&http.Cookie{Name: "nc_auth", Value: "tok"})
	v, err := m.Get(r, "nc_auth")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)

	empty := httptest.NewRequest(http.MethodGet, "/", nil)
	empty.AddCookie(&http.Cookie{Name: "nc_auth", Value: ""})
	_, err = m.Get(empty, "nc_auth")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecure(true))
	rec := httptest.NewRecorder()
	m.Delete(rec, "nc_auth")

	c := written(t, rec)
	assert.Equal(t, "nc_auth", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Secure)
	assert.Equal(t, "/", c.Path)
}
