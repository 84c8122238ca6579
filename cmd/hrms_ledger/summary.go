package main

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

func newSummaryCommand(logger *slog.Logger) *cobra.Command {
	now := time.Now()
	var month, year int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the monthly summary of posted transactions as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			// Reporting never needs schema changes.
			cfg.RunMigrations = false

			a, err := buildApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.services.Transaction.GetSummary(cmd.Context(), month, year)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().IntVar(&month, "month", int(now.Month()), "calendar month (1-12)")
	cmd.Flags().IntVar(&year, "year", now.Year(), "four digit year")
	return cmd
}
