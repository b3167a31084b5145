package app

import (
	"github.com/netandconnect/portal/modules/auth"
	"github.com/netandconnect/portal/modules/dashboard"
	"github.com/netandconnect/portal/pkg/airtable"
	"github.com/netandconnect/portal/pkg/clientip"
	"github.com/netandconnect/portal/pkg/cookie"
	"github.com/netandconnect/portal/pkg/email"
	"github.com/netandconnect/portal/pkg/httpserver"
	"github.com/netandconnect/portal/pkg/luma"
	"github.com/netandconnect/portal/pkg/pg"
	"github.com/netandconnect/portal/pkg/ratelimit"
	"github.com/netandconnect/portal/pkg/redis"
	"github.com/netandconnect/portal/svc/directory"
	"github.com/netandconnect/portal/svc/member"
)

// Config is the whole process configuration. Nested structs read their own
// variables; AUTH_SECRET is the only one without a default.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"netandconnect-portal"`
	AuthSecret  string `env:"AUTH_SECRET,required"`

	HTTP        httpserver.Config
	ClientIP    clientip.Config
	Cookie      cookie.Config
	Auth        auth.Config
	SignInLimit ratelimit.Config
	Dashboard   dashboard.Config
	Email       email.Config
	Airtable    airtable.Config
	Luma        luma.Config
	Member      member.Config
	Directory   directory.Config
	Postgres    pg.Config
	Redis       redis.Config
}
