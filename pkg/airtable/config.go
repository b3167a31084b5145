package airtable

import "time"

// Config holds the Airtable credentials and transport settings.
type Config struct {
	APIKey     string        `env:"AIRTABLE_API_KEY"`
	BaseID     string        `env:"AIRTABLE_BASE_ID"`
	BaseURL    string        `env:"AIRTABLE_BASE_URL" envDefault:"https://api.airtable.com/v0"`
	Timeout    time.Duration `env:"AIRTABLE_TIMEOUT" envDefault:"10s"`
	MaxRetries int           `env:"AIRTABLE_MAX_RETRIES" envDefault:"2"`
	RetryDelay time.Duration `env:"AIRTABLE_RETRY_DELAY" envDefault:"1s"`
}

// Enabled reports whether credentials are present.
func (c Config) Enabled() bool {
	return c.APIKey != "" && c.BaseID != ""
}
