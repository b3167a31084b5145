package auth

import "time"

// Config controls link and session lifetimes and the redirect targets.
type Config struct {
	BaseURL       string        `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	MagicLinkTTL  time.Duration `env:"AUTH_MAGIC_LINK_TTL" envDefault:"20m"`
	SessionTTL    time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`
	CookieName    string        `env:"AUTH_COOKIE_NAME" envDefault:"nc_auth"`
	SignInPath    string        `env:"AUTH_SIGN_IN_PATH" envDefault:"/sign-in"`
	DashboardPath string        `env:"AUTH_DASHBOARD_PATH" envDefault:"/dashboard"`
}

const (
	DefaultMagicLinkTTL = 20 * time.Minute
	DefaultSessionTTL   = 24 * time.Hour
	DefaultCookieName   = "nc_auth"
)

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:3000"
	}
	if c.MagicLinkTTL <= 0 {
		c.MagicLinkTTL = DefaultMagicLinkTTL
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.SignInPath == "" {
		c.SignInPath = "/sign-in"
	}
	if c.DashboardPath == "" {
		c.DashboardPath = "/dashboard"
	}
	return c
}
