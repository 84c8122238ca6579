package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title HRMS Ledger API
// @version 1.0
// @description Double-entry accounting ledger for the HRMS: posting, listing and monthly summaries.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hrms_ledger",
		Short: "HRMS transaction ledger service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(logger),
		newMigrateCommand(logger),
		newSummaryCommand(logger),
	)

	return rootCmd
}
