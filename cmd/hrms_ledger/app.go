package main

import (
	"context"
	"fmt"
	"log/slog"

	rediscache "github.com/SscSPs/hrms_ledger/internal/adapters/cache/redis"
	kafkaevents "github.com/SscSPs/hrms_ledger/internal/adapters/events/kafka"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/core/services"
	"github.com/SscSPs/hrms_ledger/internal/platform/config"
	"github.com/SscSPs/hrms_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/hrms_ledger/internal/repositories/memory"
	"github.com/SscSPs/hrms_ledger/pkg/database"
	goredis "github.com/redis/go-redis/v9"
)

// app holds the wired services plus the clients that must be closed on shutdown.
type app struct {
	cfg      *config.Config
	services *portssvc.ServiceContainer
	redis    *goredis.Client
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp constructs the store, poster, optional cache and publisher, and the service container.
func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg}

	repos, err := openStore(ctx, cfg, logger, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	mode, err := services.ParsePostingMode(cfg.PostingMode)
	if err != nil {
		a.Close()
		return nil, err
	}
	numberer := services.NewTransactionNumberer(repos.TransactionRepo)
	poster, err := services.SelectPoster(ctx, mode, repos.TransactionRepo, numberer)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := services.ContainerOptions{ReferenceCacheTTL: cfg.ReferenceCacheTTL}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafkaevents.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		opts.Publisher = publisher
		a.closers = append(a.closers, func() {
			if err := publisher.Close(); err != nil {
				logger.Error("Error closing kafka publisher", slog.String("error", err.Error()))
			}
		})
		logger.Info("Kafka publisher enabled", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	}

	if cfg.RedisURL != "" {
		client, err := rediscache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client
		a.closers = append(a.closers, func() { _ = client.Close() })
		if cfg.ReferenceCacheTTL > 0 {
			opts.ReferenceCache = rediscache.New(client)
		}
		logger.Info("Redis enabled for reference cache and rate limiting")
	}

	a.services = services.NewServiceContainer(repos, poster, opts)
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, a *app) (portsrepo.RepositoryProvider, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewStore().Provider(), nil
	}

	if cfg.RunMigrations {
		if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	a.closers = append(a.closers, func() { database.ClosePgxPool(pool) })
	return pgsql.NewRepositoryProvider(pool), nil
}
