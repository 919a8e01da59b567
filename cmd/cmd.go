// Package cmd defines the command-line interface for tripmap.
package cmd

import (
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(boundariesCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("base-url", contract.DefaultBaseURL, "Base URL of the trips backend")
	rootCmd.PersistentFlags().String("static-url", "", "Base URL serving static/taxi_zones.geojson (defaults to base-url)")
	rootCmd.PersistentFlags().String("boundaries-file", "", "Local zone boundary GeoJSON, used instead of static-url")
	rootCmd.PersistentFlags().String("http-timeout", "", "Timeout for backend requests, e.g. 30s (empty = no timeout)")
	rootCmd.PersistentFlags().Bool("strict-density", false, "Fail when a feature has no numeric density")
	rootCmd.PersistentFlags().String("source", string(schema.TripsSource), "Data source: trips or density")
	rootCmd.PersistentFlags().String("zone-id-property", contract.DefaultZoneIDProperty, "Boundary property joined against location_id for the density source")
	rootCmd.PersistentFlags().Int("reference-year", contract.DefaultReferenceYear, "Year the default window is moved into (0 = current year)")
	rootCmd.PersistentFlags().String("window", string(schema.InstantWindow), "Window kind: instant or range or hours")
	rootCmd.PersistentFlags().String("date", "", "Instant of an instant window, e.g. 2023-01-12T15:30:45")
	rootCmd.PersistentFlags().String("start", "", "Start of a range window, e.g. 2022-12-12")
	rootCmd.PersistentFlags().String("end", "", "End of a range window, e.g. 2023-01-12")
	rootCmd.PersistentFlags().Int("hour-span", schema.DefaultHourSpan, "Hour span of instant and range windows")
	rootCmd.PersistentFlags().Int("start-hour", 0, "First hour of day of an hours window")
	rootCmd.PersistentFlags().Int("end-hour", contract.DefaultEndHour, "Last hour of day of an hours window")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or geojson or html or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Selection flags act on the composed map, they are not configuration.
	renderCmd.Flags().Int("select", -1, "Highlight the zone at this layer index before writing")
	renderCmd.Flags().String("select-id", "", "Highlight the zone with this feature id before writing")

	queryCmd.Flags().String("parse", "", "Decode this query string instead of building one")
}
