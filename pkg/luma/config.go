package luma

import "time"

// Config holds the Luma calendar credentials.
type Config struct {
	APIKey  string        `env:"LUMA_API_KEY"`
	BaseURL string        `env:"LUMA_BASE_URL" envDefault:"https://public-api.lu.ma"`
	Timeout time.Duration `env:"LUMA_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool { return c.APIKey != "" }
