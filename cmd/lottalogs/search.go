package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lottalogs/lottalogs/internal/logsearch"
	"github.com/lottalogs/lottalogs/internal/model"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a log search from the command line",
		RunE:  runSearch,
	}
	cmd.Flags().StringP("text", "t", "", "Free text to match in the message field")
	cmd.Flags().StringP("index", "i", "", "Index pattern (default all indices)")
	cmd.Flags().Uint64P("size", "n", logsearch.DefaultSize, "Maximum number of hits")
	cmd.Flags().String("min", "", "Lower timestamp bound, exclusive")
	cmd.Flags().String("max", "", "Upper timestamp bound, exclusive")
	cmd.Flags().Bool("json", false, "Print the raw result as JSON")
	return cmd
}

// searchRequestFromFlags only sets fields for flags the user actually passed.
func searchRequestFromFlags(cmd *cobra.Command) logsearch.SearchRequest {
	var req logsearch.SearchRequest
	flags := cmd.Flags()
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	req.SearchText = str("text")
	req.Index = str("index")
	req.MinTimestamp = str("min")
	req.MaxTimestamp = str("max")
	if flags.Changed("size") {
		v, _ := flags.GetUint64("size")
		req.Size = &v
	}
	return req
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}
	searcher, err := newSearcher(cfg)
	if err != nil {
		return err
	}

	result, err := searcher.Search(commandContext(cmd), searchRequestFromFlags(cmd))
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(cmd.OutOrStdout(), result)
	return nil
}

func printResult(w io.Writer, result model.SearchResult) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d of %d hits", len(result.Messages), result.Total)))
	for _, m := range result.Messages {
		fmt.Fprintf(w, "%s %s %s\n  %s\n",
			mutedStyle.Render(m.Timestamp),
			keyStyle.Render(m.Host),
			mutedStyle.Render(m.Index+"/"+m.ID),
			m.Message)
	}
}
