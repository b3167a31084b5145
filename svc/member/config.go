package member

// Config names the member table and the starting allowance.
type Config struct {
	Table         string `env:"AIRTABLE_TABLE_NAME" envDefault:"Membres du club"`
	DefaultTokens int    `env:"MEMBER_DEFAULT_TOKENS" envDefault:"10"`
}

const (
	DefaultTable  = "Membres du club"
	DefaultTokens = 10
)

func (c Config) withDefaults() Config {
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if c.DefaultTokens <= 0 {
		c.DefaultTokens = DefaultTokens
	}
	return c
}
