package memberkit

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries the environment-driven settings for a MemberKit
// deployment. Values are read from MEMBERKIT_* environment variables.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string handed to dbkit.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// DefaultPageSize is the page size used when a listing request does
	// not specify one.
	DefaultPageSize int `envconfig:"DEFAULT_PAGE_SIZE" default:"10"`

	// MaxPageSize caps requested page sizes. Callers asking for more
	// receive this many rows, never an error.
	MaxPageSize int `envconfig:"MAX_PAGE_SIZE" default:"100"`

	// EnrichConcurrency bounds parallel user lookups per enriched page.
	EnrichConcurrency int `envconfig:"ENRICH_CONCURRENCY" default:"8"`
}

// LoadConfig reads the configuration from the environment.
//
// Example:
//
//	cfg, err := memberkit.LoadConfig()
//	db, err := dbkit.New(dbkit.Config{URL: cfg.DatabaseURL})
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("memberkit", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StoreOptions translates the config into store options.
func (c *Config) StoreOptions() []StoreOption {
	return []StoreOption{
		WithPageSizes(c.DefaultPageSize, c.MaxPageSize),
	}
}

// EnricherOptions translates the config into enricher options.
func (c *Config) EnricherOptions() []EnricherOption {
	return []EnricherOption{
		WithEnrichConcurrency(c.EnrichConcurrency),
	}
}
