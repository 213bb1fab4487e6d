package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jobscout/jobscout/internal/score"
)

// Config is the root configuration for jobscout.
type Config struct {
	DBPath    string
	Search    SearchConfig
	Discovery DiscoveryConfig
	Refresh   RefreshConfig
	RateLimit RateLimitConfig
	Retry     RetryConfig
	Aliases   score.Aliases
}

// SearchConfig selects and tunes the external search engine.
type SearchConfig struct {
	Engine   string // "serpapi" or "duckduckgo"
	APIKey   string // expanded from env var by Load
	Results  int    // organic results per query
	CacheTTL time.Duration
}

// DiscoveryConfig holds the default discovery query.
type DiscoveryConfig struct {
	Cities         []string
	Keywords       []string
	Providers      []string
	Limit          int
	SplitCities    bool
	SplitProviders bool
}

// RefreshConfig tunes the refresh fan-out.
type RefreshConfig struct {
	Workers      int
	FetchTimeout time.Duration
	Deadline     time.Duration
	FetchLimit   int
}

// RateLimitConfig controls provider-level pacing.
type RateLimitConfig struct {
	MinDelay time.Duration
}

// RetryConfig controls the transient-failure retry decorator.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	DBPath string `yaml:"db_path"`
	Search struct {
		Engine   string `yaml:"engine"`
		APIKey   string `yaml:"api_key"`
		Results  int    `yaml:"results"`
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"search"`
	Discovery struct {
		Cities         []string `yaml:"cities"`
		Keywords       []string `yaml:"keywords"`
		Providers      []string `yaml:"providers"`
		Limit          int      `yaml:"limit"`
		SplitCities    bool     `yaml:"split_cities"`
		SplitProviders bool     `yaml:"split_providers"`
	} `yaml:"discovery"`
	Refresh struct {
		Workers      int    `yaml:"workers"`
		FetchTimeout string `yaml:"fetch_timeout"`
		Deadline     string `yaml:"deadline"`
		FetchLimit   int    `yaml:"fetch_limit"`
	} `yaml:"refresh"`
	RateLimit struct {
		MinDelay string `yaml:"min_delay"`
	} `yaml:"rate_limit"`
	Retry struct {
		MaxRetries *int   `yaml:"max_retries"`
		BaseDelay  string `yaml:"base_delay"`
	} `yaml:"retry"`
	Aliases map[string][]string `yaml:"aliases"`
}

// Load reads and parses the YAML config file at path, applies defaults,
// validates, and returns Config. Environment variables in the file are
// expanded, so api_key can be written as ${SERPAPI_API_KEY}.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		DBPath: raw.DBPath,
		Search: SearchConfig{
			Engine:   raw.Search.Engine,
			APIKey:   raw.Search.APIKey,
			Results:  raw.Search.Results,
			CacheTTL: 24 * time.Hour,
		},
		Discovery: DiscoveryConfig{
			Cities:         raw.Discovery.Cities,
			Keywords:       raw.Discovery.Keywords,
			Providers:      raw.Discovery.Providers,
			Limit:          raw.Discovery.Limit,
			SplitCities:    raw.Discovery.SplitCities,
			SplitProviders: raw.Discovery.SplitProviders,
		},
		Refresh: RefreshConfig{
			Workers:      raw.Refresh.Workers,
			FetchTimeout: 30 * time.Second,
			Deadline:     5 * time.Minute,
			FetchLimit:   raw.Refresh.FetchLimit,
		},
		RateLimit: RateLimitConfig{MinDelay: 2 * time.Second},
		Retry:     RetryConfig{MaxRetries: 2, BaseDelay: 5 * time.Second},
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "jobscout.db"
	}
	if cfg.Search.Engine == "" {
		cfg.Search.Engine = "serpapi"
	}
	if cfg.Search.Results == 0 {
		cfg.Search.Results = 100
	}
	if cfg.Refresh.Workers == 0 {
		cfg.Refresh.Workers = 8
	}
	if raw.Retry.MaxRetries != nil {
		cfg.Retry.MaxRetries = *raw.Retry.MaxRetries
	}

	if cfg.Search.CacheTTL, err = parseDuration(raw.Search.CacheTTL, cfg.Search.CacheTTL, "search.cache_ttl"); err != nil {
		return nil, err
	}
	if cfg.Refresh.FetchTimeout, err = parseDuration(raw.Refresh.FetchTimeout, cfg.Refresh.FetchTimeout, "refresh.fetch_timeout"); err != nil {
		return nil, err
	}
	if cfg.Refresh.Deadline, err = parseDuration(raw.Refresh.Deadline, cfg.Refresh.Deadline, "refresh.deadline"); err != nil {
		return nil, err
	}
	if cfg.RateLimit.MinDelay, err = parseDuration(raw.RateLimit.MinDelay, cfg.RateLimit.MinDelay, "rate_limit.min_delay"); err != nil {
		return nil, err
	}
	if cfg.Retry.BaseDelay, err = parseDuration(raw.Retry.BaseDelay, cfg.Retry.BaseDelay, "retry.base_delay"); err != nil {
		return nil, err
	}

	if len(raw.Aliases) > 0 {
		cfg.Aliases = score.Aliases(raw.Aliases)
	} else {
		cfg.Aliases = score.DefaultAliases
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration, field string) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	return d, nil
}

func validate(cfg *Config) error {
	switch cfg.Search.Engine {
	case "serpapi", "duckduckgo":
	default:
		return fmt.Errorf("search.engine must be \"serpapi\" or \"duckduckgo\", got %q", cfg.Search.Engine)
	}
	if cfg.Search.Engine == "serpapi" && cfg.Search.APIKey == "" {
		return fmt.Errorf("search.api_key is required when search.engine is \"serpapi\"")
	}
	if cfg.Refresh.Workers < 1 {
		return fmt.Errorf("refresh.workers must be positive, got %d", cfg.Refresh.Workers)
	}
	if cfg.Refresh.FetchTimeout <= 0 {
		return fmt.Errorf("refresh.fetch_timeout must be positive, got %v", cfg.Refresh.FetchTimeout)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}
	return nil
}
