package ratelimit

import "time"

// Config sizes a Limiter: Requests per Window on average, with up to Burst
// requests allowed back to back.
type Config struct {
	Requests int           `env:"RATELIMIT_SIGNIN_REQUESTS" envDefault:"5"`
	Window   time.Duration `env:"RATELIMIT_SIGNIN_WINDOW" envDefault:"1m"`
	Burst    int           `env:"RATELIMIT_SIGNIN_BURST" envDefault:"5"`
}
