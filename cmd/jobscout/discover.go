package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jobscout/jobscout/internal/config"
	"github.com/jobscout/jobscout/internal/discovery"
)

var (
	discoverCities    []string
	discoverKeywords  []string
	discoverProviders []string
	discoverLimit     int
	discoverSplit     bool
	discoverBypass    bool
	discoverSave      bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Search the web for companies hiring on ATS boards",
	Long:  "Runs an external search for hosted ATS board pages matching your cities and keywords, extracts the companies behind them, and optionally saves them to the store.",
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().StringSliceVar(&discoverCities, "city", nil, "city to search in (repeatable, overrides config)")
	discoverCmd.Flags().StringSliceVar(&discoverKeywords, "keyword", nil, "role keyword (repeatable, overrides config)")
	discoverCmd.Flags().StringSliceVar(&discoverProviders, "provider", nil, "restrict to these ATS providers (repeatable)")
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 0, "max companies to return")
	discoverCmd.Flags().BoolVar(&discoverSplit, "split", false, "issue one search query per city and provider instead of OR-combined clauses")
	discoverCmd.Flags().BoolVar(&discoverBypass, "no-cache", false, "skip the search cache and fetch fresh results")
	discoverCmd.Flags().BoolVar(&discoverSave, "save", false, "upsert discovered companies into the store")
	rootCmd.AddCommand(discoverCmd)
}

// discoveryParams maps the config's discovery section to engine params.
func discoveryParams(cfg *config.Config) discovery.Params {
	return discovery.Params{
		Cities:         cfg.Discovery.Cities,
		Keywords:       cfg.Discovery.Keywords,
		Providers:      cfg.Discovery.Providers,
		Limit:          cfg.Discovery.Limit,
		SplitCities:    cfg.Discovery.SplitCities,
		SplitProviders: cfg.Discovery.SplitProviders,
	}
}

func runDiscover(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := discoveryParams(cfg)
	params.Bypass = discoverBypass
	if len(discoverCities) > 0 {
		params.Cities = discoverCities
	}
	if len(discoverKeywords) > 0 {
		params.Keywords = discoverKeywords
	}
	if len(discoverProviders) > 0 {
		params.Providers = discoverProviders
	}
	if discoverLimit > 0 {
		params.Limit = discoverLimit
	}
	if discoverSplit {
		params.SplitCities = true
		params.SplitProviders = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := buildEngine(cfg, newHTTPClient(), logger)
	companies, err := engine.Discover(ctx, params)
	if err != nil {
		logger.Error("discovery failed", "error", err)
		os.Exit(1)
	}
	logger.Info("discovery complete", "companies", len(companies))

	if discoverSave {
		s, err := openStore(cfg, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer s.Close()
		for _, c := range companies {
			if err := s.UpsertCompany(ctx, c); err != nil {
				logger.Error("failed to save company", "company", c.Key(), "error", err)
			}
		}
		logger.Info("companies saved", "count", len(companies))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(companies)
}
