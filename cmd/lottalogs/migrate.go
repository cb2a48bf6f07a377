package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lottalogs/lottalogs/internal/database"
	"github.com/lottalogs/lottalogs/internal/repository"
)

var errHistoryDisabled = errors.New("database.url is not set, search history is disabled")

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply search history migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errHistoryDisabled
			}
			return database.RunMigrations(commandContext(cmd), cfg.Database.URL, log)
		},
	}
}

func newHistoryCmd() *cobra.Command {
	history := &cobra.Command{
		Use:   "history",
		Short: "Manage recorded searches",
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete recorded searches older than a given age",
		RunE:  runPrune,
	}
	prune.Flags().Duration("older-than", 30*24*time.Hour, "Age of the records to delete")

	history.AddCommand(prune)
	return history
}

func runPrune(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	age, _ := cmd.Flags().GetDuration("older-than")
	if age <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", age)
	}
	if !cfg.Database.Enabled() {
		return errHistoryDisabled
	}

	ctx := commandContext(cmd)
	pool, err := database.NewPool(ctx, cfg.Database.URL, log)
	if err != nil {
		return fmt.Errorf("database pool: %w", err)
	}
	defer pool.Close()

	cutoff := time.Now().Add(-age)
	n, err := repository.NewHistoryRepository(pool).DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	log.Info().Str("component", "history").Int64("deleted", n).Time("cutoff", cutoff).Msg("pruned search history")
	fmt.Fprintln(cmd.OutOrStdout(), formatKeyValue("deleted", fmt.Sprint(n)))
	return nil
}
