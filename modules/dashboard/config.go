package dashboard

// Config tunes the dashboard API.
type Config struct {
	EventCost    int `env:"DASHBOARD_EVENT_COST" envDefault:"1"`
	HistoryLimit int `env:"DASHBOARD_HISTORY_LIMIT" envDefault:"20"`
}

// Default page sizes per listing.
const (
	DefaultMembersLimit   = 9
	DefaultExpertsLimit   = 6
	DefaultPartnersLimit  = 8
	DefaultCommunityLimit = 8
	maxHistoryLimit       = 100
	maxTokenAmount        = 1000
	maxEventIDLength      = 128
)

func (c Config) withDefaults() Config {
	if c.EventCost <= 0 {
		c.EventCost = 1
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 20
	}
	return c
}
