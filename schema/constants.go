package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// WindowKind represents which shape of time window is sent to the backend.
	WindowKind string

	// DataSource represents which backend endpoint feeds the overlay.
	DataSource string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	GeoJSONOut OutputMode = "geojson"
	HTMLOut    OutputMode = "html"
	ParquetOut OutputMode = "parquet"
)

// All window kinds supported.
const (
	InstantWindow   WindowKind = "instant" // default
	RangeWindow     WindowKind = "range"
	HourRangeWindow WindowKind = "hours"
)

// All data sources supported.
const (
	TripsSource   DataSource = "trips"   // default, backend returns styled-ready GeoJSON
	DensitySource DataSource = "density" // backend returns counts, joined onto zone boundaries
)

// Query parameter names understood by the backend.
const (
	ParamDate      = "date"
	ParamHourSpan  = "hour_span"
	ParamStartDate = "startDate"
	ParamEndDate   = "endDate"
	ParamStartTime = "startTime"
	ParamEndTime   = "endTime"
)

// DensityProperty is the feature property carrying the trip count.
const DensityProperty = "density"

// QueryTimeLayout is the fixed date-time encoding used in backend queries.
const QueryTimeLayout = "2006-01-02T15:04:05"

// DefaultHourSpan is the hour span used when a window does not specify one.
const DefaultHourSpan = 1

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	GeoJSONOut: {},
	HTMLOut:    {},
	ParquetOut: {},
}

// ValidWindowKinds lists all valid window kinds.
var ValidWindowKinds = map[WindowKind]struct{}{
	InstantWindow:   {},
	RangeWindow:     {},
	HourRangeWindow: {},
}

// ValidDataSources lists all valid data sources.
var ValidDataSources = map[DataSource]struct{}{
	TripsSource:   {},
	DensitySource: {},
}
