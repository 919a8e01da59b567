package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/pynyc/tripmap/schema"
)

// Default values for configuration.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultReferenceYear  = 2023
	DefaultZoneIDProperty = "location_id"
	DefaultCenterLat      = 40.7128
	DefaultCenterLng      = -74.006
	DefaultZoom           = 10
	DefaultEndHour        = 23
	DefaultTileURL        = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution    = `&copy; <a href="http://www.openstreetmap.org/copyright">OpenStreetMap</a>`
	MaxTileZoom           = 19
)

// DateTimeFormats are the layouts accepted for explicit window bounds, tried in order.
var DateTimeFormats = []string{schema.QueryTimeLayout, time.RFC3339, time.DateOnly}

// Config holds the runtime configuration for rendering.
// This struct is the "final, validated" config.
type Config struct {
	BaseURL        string // Backend base URL, trips live under /trips
	StaticURL      string // Base URL of the static asset collaborator (defaults to BaseURL)
	BoundariesFile string // Local zone boundary file, takes precedence over StaticURL
	HTTPTimeout    time.Duration

	Source         schema.DataSource
	ZoneIDProperty string
	StrictDensity  bool

	WindowKind    schema.WindowKind
	ReferenceYear int
	Window        schema.TimeWindow // Explicit window; zero Kind means derive the default
	HourSpan      int               // Hour span applied to derived windows
	StartHour     int               // Hour-of-day bounds applied to derived hour-range windows
	EndHour       int

	Center schema.LatLng
	Zoom   int
	Tiles  schema.TileLayer

	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	BaseURL        string `mapstructure:"base-url"`
	StaticURL      string `mapstructure:"static-url"`
	BoundariesFile string `mapstructure:"boundaries-file"`
	HTTPTimeout    string `mapstructure:"http-timeout"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`

	// --- Window selection ---
	Window        string `mapstructure:"window"`
	ReferenceYear int    `mapstructure:"reference-year"`
	Date          string `mapstructure:"date"`
	Start         string `mapstructure:"start"`
	End           string `mapstructure:"end"`
	HourSpan      int    `mapstructure:"hour-span"`
	StartHour     int    `mapstructure:"start-hour"`
	EndHour       *int   `mapstructure:"end-hour"` // nil means DefaultEndHour

	// --- Data source ---
	Source         string `mapstructure:"source"`
	ZoneIDProperty string `mapstructure:"zone-id-property"`
	StrictDensity  bool   `mapstructure:"strict-density"`

	// --- Map surface, config file only ---
	CenterLat       float64 `mapstructure:"center-lat"`
	CenterLng       float64 `mapstructure:"center-lng"`
	Zoom            int     `mapstructure:"zoom"`
	TileURL         string  `mapstructure:"tile-url"`
	TileAttribution string  `mapstructure:"tile-attribution"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WindowInput returns raw window inputs that reproduce the derived window settings of c.
// Explicit bounds are not included; see ProcessWindowOverrides.
func (c *Config) WindowInput() *ConfigRawInput {
	endHour := c.EndHour
	return &ConfigRawInput{
		Window:        string(c.WindowKind),
		ReferenceYear: c.ReferenceYear,
		HourSpan:      c.HourSpan,
		StartHour:     c.StartHour,
		EndHour:       &endHour,
	}
}

// HasExplicitWindow reports whether the window was requested explicitly.
func (c *Config) HasExplicitWindow() bool {
	return c.Window.Kind != ""
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSurface(cfg, input); err != nil {
		return err
	}
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processWindow(cfg, input); err != nil {
		return err
	}
	return nil
}

// ProcessWindowOverrides re-resolves only the window settings of cfg from input.
// An explicit window already on cfg is kept, with the new hour settings applied, unless
// input names new bounds or a different window kind.
func ProcessWindowOverrides(cfg *Config, input *ConfigRawInput) error {
	explicit := cfg.Window
	cfg.Window = schema.TimeWindow{}
	if err := processWindow(cfg, input); err != nil {
		return err
	}
	if cfg.HasExplicitWindow() || explicit.Kind == "" || explicit.Kind != cfg.WindowKind {
		return nil
	}
	switch explicit.Kind {
	case schema.HourRangeWindow:
		explicit.StartHour, explicit.EndHour = cfg.StartHour, cfg.EndHour
	default:
		explicit = explicit.WithHourSpan(cfg.HourSpan)
	}
	cfg.Window = explicit
	return nil
}

// validateSimpleInputs processes and validates transport and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("base-url must start with http:// or https:// (received %q)", input.BaseURL)
	}
	cfg.StaticURL = strings.TrimRight(strings.TrimSpace(input.StaticURL), "/")
	if cfg.StaticURL == "" {
		cfg.StaticURL = cfg.BaseURL
	}
	cfg.BoundariesFile = strings.TrimSpace(input.BoundariesFile)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.StrictDensity = input.StrictDensity

	timeout := strings.TrimSpace(input.HTTPTimeout)
	if timeout != "" && timeout != "0" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid http-timeout %q: %w", input.HTTPTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("http-timeout cannot be negative (received %s)", d)
		}
		cfg.HTTPTimeout = d
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, geojson, html, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processSurface fills in the base map parameters.
func processSurface(cfg *Config, input *ConfigRawInput) error {
	cfg.Center = schema.LatLng{Lat: DefaultCenterLat, Lng: DefaultCenterLng}
	if input.CenterLat != 0 || input.CenterLng != 0 {
		if input.CenterLat < -90 || input.CenterLat > 90 || input.CenterLng < -180 || input.CenterLng > 180 {
			return fmt.Errorf("center (%g, %g) is not a valid coordinate", input.CenterLat, input.CenterLng)
		}
		cfg.Center = schema.LatLng{Lat: input.CenterLat, Lng: input.CenterLng}
	}

	cfg.Zoom = DefaultZoom
	if input.Zoom != 0 {
		if input.Zoom < 0 || input.Zoom > MaxTileZoom {
			return fmt.Errorf("zoom must be between 0 and %d (received %d)", MaxTileZoom, input.Zoom)
		}
		cfg.Zoom = input.Zoom
	}

	cfg.Tiles = schema.TileLayer{URLTemplate: DefaultTileURL, MaxZoom: MaxTileZoom, Attribution: DefaultAttribution}
	if input.TileURL != "" {
		cfg.Tiles.URLTemplate = input.TileURL
	}
	if input.TileAttribution != "" {
		cfg.Tiles.Attribution = input.TileAttribution
	}
	return nil
}

// processSource validates the data source and zone join settings.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.DataSource(strings.ToLower(input.Source))
	if cfg.Source == "" {
		cfg.Source = schema.TripsSource
	}
	if _, ok := schema.ValidDataSources[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be trips, density", input.Source)
	}
	cfg.ZoneIDProperty = input.ZoneIDProperty
	if cfg.ZoneIDProperty == "" {
		cfg.ZoneIDProperty = DefaultZoneIDProperty
	}
	return nil
}

// processWindow resolves the window kind and any explicit window bounds.
// Bounds are not checked for order; the backend rejects inverted windows.
func processWindow(cfg *Config, input *ConfigRawInput) error {
	cfg.WindowKind = schema.WindowKind(strings.ToLower(input.Window))
	if cfg.WindowKind == "" {
		cfg.WindowKind = schema.InstantWindow
	}
	if _, ok := schema.ValidWindowKinds[cfg.WindowKind]; !ok {
		return fmt.Errorf("invalid window '%s'. must be instant, range, hours", input.Window)
	}
	// The density endpoint only understands hour-of-day ranges.
	if cfg.Source == schema.DensitySource {
		cfg.WindowKind = schema.HourRangeWindow
	}

	cfg.ReferenceYear = input.ReferenceYear
	if cfg.ReferenceYear != 0 && (cfg.ReferenceYear < 1970 || cfg.ReferenceYear > 9999) {
		return fmt.Errorf("reference-year must be 0 or between 1970 and 9999 (received %d)", input.ReferenceYear)
	}
	if input.HourSpan < 0 {
		return fmt.Errorf("hour-span cannot be negative (received %d)", input.HourSpan)
	}
	endHour := DefaultEndHour
	if input.EndHour != nil {
		endHour = *input.EndHour
	}
	if input.StartHour < 0 || input.StartHour > 23 || endHour < 0 || endHour > 23 {
		return fmt.Errorf("start-hour and end-hour must be between 0 and 23 (received %d, %d)", input.StartHour, endHour)
	}

	cfg.HourSpan = input.HourSpan
	if cfg.HourSpan == 0 {
		cfg.HourSpan = schema.DefaultHourSpan
	}
	cfg.StartHour, cfg.EndHour = input.StartHour, endHour

	hasRange := input.Start != "" || input.End != ""
	switch {
	case input.Date != "" && hasRange:
		return fmt.Errorf("--date cannot be combined with --start/--end")

	case input.Date != "":
		if cfg.WindowKind != schema.InstantWindow {
			return fmt.Errorf("--date requires the instant window (received %s)", cfg.WindowKind)
		}
		at, err := ParseDateTime(input.Date)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		cfg.Window = schema.NewInstantWindow(at, cfg.HourSpan)

	case hasRange:
		if input.Start == "" || input.End == "" {
			return fmt.Errorf("--start and --end must be given together")
		}
		start, err := ParseDateTime(input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		end, err := ParseDateTime(input.End)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		if cfg.WindowKind == schema.HourRangeWindow {
			cfg.Window = schema.NewHourRangeWindow(start, end, cfg.StartHour, cfg.EndHour)
		} else {
			cfg.WindowKind = schema.RangeWindow
			cfg.Window = schema.NewRangeWindow(start, end).WithHourSpan(cfg.HourSpan)
		}
	}
	return nil
}

// ParseDateTime parses an explicit window bound in any of DateTimeFormats.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateTimeFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("'%s' must look like 2023-01-12T15:30:45, RFC3339 or 2023-01-12", s)
}
