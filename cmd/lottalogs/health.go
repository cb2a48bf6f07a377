package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the Elasticsearch backend is reachable",
		RunE:  runHealth,
	}
}

func runHealth(cmd *cobra.Command, _ []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}
	searcher, err := newSearcher(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatKeyValue("backend", cfg.Elasticsearch.URL))
	if err := searcher.HealthCheck(commandContext(cmd)); err != nil {
		fmt.Fprintln(out, formatKeyValue("status", errorStyle.Render("unhealthy")))
		return err
	}
	fmt.Fprintln(out, formatKeyValue("status", successStyle.Render("healthy")))
	return nil
}
