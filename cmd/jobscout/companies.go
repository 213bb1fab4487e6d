package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List all known companies",
	Long:  "Prints a table of every company currently in the store.",
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
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

	companies, err := s.Companies(ctx)
	if err != nil {
		logger.Error("failed to list companies", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%-25s %-15s %-15s %s\n", "Company", "Provider", "City", "Careers URL")
	fmt.Println(strings.Repeat("─", 90))
	for _, c := range companies {
		fmt.Printf("%-25s %-15s %-15s %s\n", c.Name, c.Provider, c.City, c.CareersURL)
	}
	fmt.Printf("\nTotal: %d companies\n", len(companies))
	return nil
}
