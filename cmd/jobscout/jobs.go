package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/store"
)

var (
	jobsProvider string
	jobsWorkMode string
	jobsMinScore int
	jobsMaxAge   int
	jobsCities   []string
	jobsKeywords []string
	jobsLimit    int
	jobsJSON     bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List stored postings, best matches first",
	Long:  "Queries the local store for postings, ordered by score. Filters narrow by provider, work mode, score, age, city, and title keywords.",
	RunE:  runJobs,
}

func init() {
	jobsCmd.Flags().StringVar(&jobsProvider, "provider", "", "only this ATS provider")
	jobsCmd.Flags().StringVar(&jobsWorkMode, "work-mode", "", "only this work mode (remote, hybrid, onsite)")
	jobsCmd.Flags().IntVar(&jobsMinScore, "min-score", 0, "minimum score")
	jobsCmd.Flags().IntVar(&jobsMaxAge, "max-age", 0, "max posting age in days")
	jobsCmd.Flags().StringSliceVar(&jobsCities, "city", nil, "only postings located in this city (repeatable, alias-aware)")
	jobsCmd.Flags().StringSliceVar(&jobsKeywords, "keyword", nil, "only titles containing this keyword (repeatable)")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 0, "max postings to print")
	jobsCmd.Flags().BoolVar(&jobsJSON, "json", false, "print postings as JSON")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postings, err := s.Query(ctx, store.Filters{
		Provider:      jobsProvider,
		WorkMode:      model.WorkMode(jobsWorkMode),
		MinScore:      jobsMinScore,
		MaxAgeDays:    jobsMaxAge,
		Cities:        jobsCities,
		TitleKeywords: jobsKeywords,
		Limit:         jobsLimit,
	})
	if err != nil {
		logger.Error("query failed", "error", err)
		os.Exit(1)
	}

	if jobsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(postings)
	}

	fmt.Printf("%-6s %-30s %-25s %-20s %s\n", "Score", "Title", "Company", "Location", "URL")
	fmt.Println(strings.Repeat("─", 110))
	for _, p := range postings {
		fmt.Printf("%-6d %-30s %-25s %-20s %s\n",
			p.Score, truncate(p.Title, 30), truncate(p.Company, 25), truncate(p.Location, 20), p.URL)
	}
	fmt.Printf("\nTotal: %d postings\n", len(postings))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
