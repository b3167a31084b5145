package directory

import "time"

// Config names the source tables and tunes company lookups.
type Config struct {
	MembersTable     string        `env:"AIRTABLE_TABLE_NAME" envDefault:"Membres du club"`
	ExpertsTable     string        `env:"DIRECTORY_EXPERTS_TABLE" envDefault:"Nos experts"`
	PartnersTable    string        `env:"DIRECTORY_PARTNERS_TABLE" envDefault:"partners"`
	CommunityTable   string        `env:"DIRECTORY_COMMUNITY_TABLE" envDefault:"Le cercle"`
	CompaniesTable   string        `env:"DIRECTORY_COMPANIES_TABLE" envDefault:"Entreprises"`
	CompanyCacheSize int           `env:"DIRECTORY_COMPANY_CACHE_SIZE" envDefault:"512"`
	CompanyCacheTTL  time.Duration `env:"DIRECTORY_COMPANY_CACHE_TTL" envDefault:"15m"`
	LookupWorkers    int           `env:"DIRECTORY_LOOKUP_WORKERS" envDefault:"4"`
}

func (c Config) withDefaults() Config {
	if c.MembersTable == "" {
		c.MembersTable = "Membres du club"
	}
	if c.ExpertsTable == "" {
		c.ExpertsTable = "Nos experts"
	}
	if c.PartnersTable == "" {
		c.PartnersTable = "partners"
	}
	if c.CommunityTable == "" {
		c.CommunityTable = "Le cercle"
	}
	if c.CompaniesTable == "" {
		c.CompaniesTable = "Entreprises"
	}
	if c.CompanyCacheSize <= 0 {
		c.CompanyCacheSize = 512
	}
	if c.CompanyCacheTTL <= 0 {
		c.CompanyCacheTTL = 15 * time.Minute
	}
	if c.LookupWorkers <= 0 {
		c.LookupWorkers = 4
	}
	return c
}
