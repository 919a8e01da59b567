package cmd

import (
	"fmt"

	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/outwriter"
	"github.com/pynyc/tripmap/internal/tripclient"
	"github.com/spf13/cobra"
)

// renderCmd composes the trip density map and writes it.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the trip density map for a time window.",
	Long: `Query the trips backend and shade every taxi zone by its trip count.

Without --date or --start/--end the window is derived from the current time,
moved into the reference year. When the backend cannot be reached the map is
still written with its base layer and a notice.

Examples:
  # Density around this moment, one year of sample data
  tripmap render

  # A month of trips as a standalone Leaflet page
  tripmap render --start 2022-12-12 --end 2023-01-12 --output html --output-file map.html

  # Aggregated counts joined onto zone boundaries, morning hours only
  tripmap render --source density --start 2023-01-01 --end 2023-01-31 --start-hour 7 --end-hour 9

  # Highlight a zone and export the styled overlay
  tripmap render --select-id 132 --output geojson --output-file zones.geojson`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		surface := core.Compose(rootCtx, cfg, tripclient.NewClient(cfg))
		if err := applySelection(cmd, surface); err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteSurface(surface.Result(), cfg)
	},
}

// applySelection highlights the zone named by --select or --select-id.
func applySelection(cmd *cobra.Command, surface *core.Surface) error {
	index, _ := cmd.Flags().GetInt("select")
	id, _ := cmd.Flags().GetString("select-id")
	if index < 0 && id == "" {
		return nil
	}
	if surface.Degraded() {
		// Nothing to select on a base map only.
		return nil
	}
	if index < 0 {
		i, ok := surface.Overlay.IndexOf(id)
		if !ok {
			return fmt.Errorf("cannot select zone %q: %w", id, core.ErrNoSuchFeature)
		}
		index = i
	}
	if err := surface.Select(index); err != nil {
		return fmt.Errorf("cannot select zone: %w", err)
	}
	return nil
}
