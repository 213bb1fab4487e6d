package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobscout/jobscout/internal/adapter"
	"github.com/jobscout/jobscout/internal/cache"
	"github.com/jobscout/jobscout/internal/config"
	"github.com/jobscout/jobscout/internal/discovery"
	"github.com/jobscout/jobscout/internal/ratelimit"
	"github.com/jobscout/jobscout/internal/retry"
	"github.com/jobscout/jobscout/internal/search"
	"github.com/jobscout/jobscout/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Find and track job postings across ATS boards",
	Long:  "JobScout discovers companies hiring on hosted ATS boards via web search, pulls their open postings, scores them against your keywords and cities, and keeps them in a local database.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSCOUT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSCOUT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSCOUT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func setupSearcher(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) search.Searcher {
	switch cfg.Search.Engine {
	case "duckduckgo":
		logger.Info("using duckduckgo search")
		return search.NewDuckDuckGoClient(cfg.Search.Results, httpClient)
	default:
		logger.Info("using serpapi search")
		return search.NewSerpAPIClient(cfg.Search.APIKey, cfg.Search.Results, httpClient)
	}
}

// buildRegistry creates the provider registry with every adapter wrapped in
// the rate-limit and retry decorators. Rate limiting sits inside retry so
// every attempt, retries included, waits on the provider's bucket.
func buildRegistry(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) *adapter.Registry {
	registry := adapter.NewRegistry(httpClient)
	limiter := ratelimit.NewProviderLimiter(cfg.RateLimit.MinDelay)
	for _, name := range registry.Names() {
		a, _ := registry.Get(name)
		a = ratelimit.Wrap(a, limiter)
		registry.Register(retry.Wrap(a, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger))
	}
	return registry
}

func buildEngine(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) *discovery.Engine {
	searcher := setupSearcher(cfg, httpClient, logger)
	resultCache := cache.New[[]search.Result]()
	return discovery.NewEngine(searcher, resultCache, cfg.Search.CacheTTL, cfg.Aliases, logger)
}

func openStore(cfg *config.Config, logger *slog.Logger) (*store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(cfg.DBPath, cfg.Aliases)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "path", cfg.DBPath)
	return s, nil
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
