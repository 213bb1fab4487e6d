package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jobscout/jobscout/internal/refresh"
	"github.com/jobscout/jobscout/internal/score"
)

var (
	refreshDiscover bool
	refreshWorkers  int
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch current postings for every known company",
	Long:  "Pulls each stored company's ATS board in parallel, scores and upserts the postings, and prints a per-company report. With --discover, runs discovery first and refreshes the result.",
	RunE:  runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshDiscover, "discover", false, "run discovery before refreshing instead of using stored companies")
	refreshCmd.Flags().IntVar(&refreshWorkers, "workers", 0, "max concurrent provider fetches (overrides config)")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	httpClient := newHTTPClient()

	companies, err := s.Companies(ctx)
	if err != nil {
		logger.Error("failed to list companies", "error", err)
		os.Exit(1)
	}
	if refreshDiscover {
		engine := buildEngine(cfg, httpClient, logger)
		discovered, err := engine.Discover(ctx, discoveryParams(cfg))
		if err != nil {
			logger.Error("discovery failed", "error", err)
			os.Exit(1)
		}
		companies = discovered
	}
	if len(companies) == 0 {
		logger.Error("no companies to refresh; run discover first or pass --discover")
		os.Exit(1)
	}

	opts := refresh.Options{
		Workers:      cfg.Refresh.Workers,
		FetchTimeout: cfg.Refresh.FetchTimeout,
		Deadline:     cfg.Refresh.Deadline,
		FetchLimit:   cfg.Refresh.FetchLimit,
	}
	if refreshWorkers > 0 {
		opts.Workers = refreshWorkers
	}

	registry := buildRegistry(cfg, httpClient, logger)
	scorer := score.NewScorer(cfg.Aliases)
	orch := refresh.NewOrchestrator(registry, s, scorer, opts, logger)

	report, _, err := orch.Refresh(ctx, companies, cfg.Discovery.Cities, cfg.Discovery.Keywords)
	if err != nil {
		logger.Error("refresh failed", "error", err)
		os.Exit(1)
	}

	logger.Info("refresh complete",
		"companies_ok", report.Summary.CompaniesOK,
		"companies_failed", report.Summary.CompaniesFailed,
		"jobs_written", report.Summary.JobsWritten,
		"new_postings", len(report.NewIDs),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
