package cmd

import (
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/outwriter"
	"github.com/pynyc/tripmap/internal/tripclient"
	"github.com/spf13/cobra"
)

// boundariesCmd draws the taxi zone boundaries without trip data.
var boundariesCmd = &cobra.Command{
	Use:   "boundaries",
	Short: "Render the taxi zone boundaries without trip data.",
	Long: `Load taxi_zones.geojson from the static asset server, or from --boundaries-file,
and draw it with the map's default style. No trip query is made and zones are not interactive.

Examples:
  tripmap boundaries --output html --output-file zones.html
  tripmap boundaries --boundaries-file ./taxi_zones.geojson --output csv`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		surface := core.ComposeBoundaries(rootCtx, cfg, tripclient.NewClient(cfg))
		return outwriter.NewOutWriter().WriteSurface(surface.Result(), cfg)
	},
}
