package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lottalogs/lottalogs/internal/config"
	"github.com/lottalogs/lottalogs/internal/database"
	"github.com/lottalogs/lottalogs/internal/elastic"
	"github.com/lottalogs/lottalogs/internal/logger"
	"github.com/lottalogs/lottalogs/internal/logsearch"
	"github.com/lottalogs/lottalogs/internal/observability"
	"github.com/lottalogs/lottalogs/internal/repository"
	"github.com/lottalogs/lottalogs/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	nrApp, err := observability.NewApplication(cfg.Observability, log)
	if err != nil {
		return err
	}
	if nrApp != nil {
		defer nrApp.Shutdown(5 * time.Second)
	}

	searcher, err := newSearcher(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := server.Deps{Searcher: searcher, NewRelic: nrApp, Logger: log}
	if cfg.Database.Enabled() {
		if err := database.RunMigrations(ctx, cfg.Database.URL, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		pool, err := database.NewPool(ctx, cfg.Database.URL, log)
		if err != nil {
			return fmt.Errorf("database pool: %w", err)
		}
		defer pool.Close()
		deps.History = repository.NewHistoryRepository(pool)
	} else {
		log.Info().Str("component", "server").Msg("database.url not set, search history disabled")
	}

	return server.New(cfg, deps).Start(ctx)
}

// bootstrap loads config and installs the process logger.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.Observability), nil
}

func newSearcher(cfg *config.Config) (*logsearch.Searcher, error) {
	client, err := elastic.NewClient(cfg.Elasticsearch, nil)
	if err != nil {
		return nil, err
	}
	return logsearch.NewSearcher(client), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
