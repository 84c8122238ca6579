package main

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/hrms_ledger/internal/platform/config"
	"github.com/SscSPs/hrms_ledger/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", slog.String("error", err.Error()))
				return err
			}
			if cfg.StoreDriver != config.StoreDriverPostgres {
				return errors.New("migrate requires STORE_DRIVER=postgres")
			}
			logger.Info("Running database migrations...")
			_, err = database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
			return err
		},
	}
}
