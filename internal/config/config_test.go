package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/jobscout.db
search:
  engine: serpapi
  api_key: "secret"
  results: 40
  cache_ttl: 12h
discovery:
  cities:
    - Tel Aviv
    - Haifa
  keywords:
    - backend
  providers:
    - greenhouse
  limit: 25
  split_cities: true
refresh:
  workers: 4
  fetch_timeout: 10s
  deadline: 2m
  fetch_limit: 100
rate_limit:
  min_delay: 3s
retry:
  max_retries: 1
  base_delay: 2s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/jobscout.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Search.Engine != "serpapi" || cfg.Search.APIKey != "secret" || cfg.Search.Results != 40 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Search.CacheTTL != 12*time.Hour {
		t.Errorf("CacheTTL = %v, want 12h", cfg.Search.CacheTTL)
	}
	if len(cfg.Discovery.Cities) != 2 || cfg.Discovery.Cities[0] != "Tel Aviv" {
		t.Errorf("Cities = %v", cfg.Discovery.Cities)
	}
	if !cfg.Discovery.SplitCities || cfg.Discovery.SplitProviders {
		t.Errorf("split flags = %v %v", cfg.Discovery.SplitCities, cfg.Discovery.SplitProviders)
	}
	if cfg.Refresh.Workers != 4 || cfg.Refresh.FetchTimeout != 10*time.Second || cfg.Refresh.Deadline != 2*time.Minute {
		t.Errorf("Refresh = %+v", cfg.Refresh)
	}
	if cfg.RateLimit.MinDelay != 3*time.Second {
		t.Errorf("MinDelay = %v", cfg.RateLimit.MinDelay)
	}
	if cfg.Retry.MaxRetries != 1 || cfg.Retry.BaseDelay != 2*time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
search:
  engine: duckduckgo
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "jobscout.db" {
		t.Errorf("default DBPath = %q", cfg.DBPath)
	}
	if cfg.Search.Results != 100 || cfg.Search.CacheTTL != 24*time.Hour {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if cfg.Refresh.Workers != 8 || cfg.Refresh.FetchTimeout != 30*time.Second || cfg.Refresh.Deadline != 5*time.Minute {
		t.Errorf("refresh defaults = %+v", cfg.Refresh)
	}
	if cfg.RateLimit.MinDelay != 2*time.Second {
		t.Errorf("rate limit default = %v", cfg.RateLimit.MinDelay)
	}
	if cfg.Retry.MaxRetries != 2 || cfg.Retry.BaseDelay != 5*time.Second {
		t.Errorf("retry defaults = %+v", cfg.Retry)
	}
	if len(cfg.Aliases) == 0 {
		t.Error("expected default alias table")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_SERP_KEY", "expanded-key")
	path := writeConfig(t, `
search:
  engine: serpapi
  api_key: "${TEST_SERP_KEY}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.APIKey != "expanded-key" {
		t.Errorf("APIKey = %q, want expansion from env", cfg.Search.APIKey)
	}
}

func TestLoad_AliasOverride(t *testing.T) {
	path := writeConfig(t, `
search:
  engine: duckduckgo
aliases:
  berlin:
    - berlin
    - berlin mitte
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Aliases["berlin"]) != 2 {
		t.Errorf("Aliases = %v", cfg.Aliases)
	}
	if _, ok := cfg.Aliases["tel aviv"]; ok {
		t.Error("custom alias table should replace the default, not merge")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "search: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown engine", "search:\n  engine: bing\n"},
		{"serpapi without key", "search:\n  engine: serpapi\n"},
		{"bad duration", "search:\n  engine: duckduckgo\n  cache_ttl: soon\n"},
		{"negative retries", "search:\n  engine: duckduckgo\nretry:\n  max_retries: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
