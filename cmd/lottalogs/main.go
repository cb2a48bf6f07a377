package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var Version = "devel"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lottalogs",
		Short:         "Search logs stored in Elasticsearch",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newHealthCmd(),
		newMigrateCmd(),
		newHistoryCmd(),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		root.PrintErrln(errorStyle.Render("error: " + err.Error()))
		os.Exit(1)
	}
}
