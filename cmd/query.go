package cmd

import (
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/outwriter"
	"github.com/spf13/cobra"
)

// queryCmd prints the backend query for a time window.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the backend query string for a time window.",
	Long: `Build the exact query string render would send, without contacting the backend.

Examples:
  # The default instant query
  tripmap query

  # A range window
  tripmap query --start 2022-12-12 --end 2023-01-12

  # Decode an existing query
  tripmap query --parse 'date=2023-01-12T15:30:45&hour_span=1' --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if raw, _ := cmd.Flags().GetString("parse"); raw != "" {
			w, err := core.ParseQuery(raw)
			if err != nil {
				return err
			}
			return outwriter.NewOutWriter().WriteQuery(core.BuildQuery(w), w, cfg)
		}
		w := core.ResolveWindow(rootCtx, cfg)
		return outwriter.NewOutWriter().WriteQuery(core.BuildQuery(w), w, cfg)
	},
}
