// Package schema has models, constants and shared value types for all parts of tripmap.
package schema

import (
	"time"

	"github.com/paulmach/orb"
)

// Bucket is one of the five ordered density tiers of the choropleth.
// Higher values represent denser regions.
type Bucket int

// All buckets, in ascending density order.
const (
	BucketMinimal  Bucket = iota // density <= 10, missing or invalid
	BucketLow                    // density > 10
	BucketMedium                 // density > 20
	BucketHigh                   // density > 50
	BucketVeryHigh               // density > 100
)

// AllBuckets lists every bucket in ascending density order.
var AllBuckets = []Bucket{BucketMinimal, BucketLow, BucketMedium, BucketHigh, BucketVeryHigh}

var bucketColors = map[Bucket]string{
	BucketVeryHigh: "#800026",
	BucketHigh:     "#BD0026",
	BucketMedium:   "#E31A1C",
	BucketLow:      "#FC4E2A",
	BucketMinimal:  "#FFEDA0",
}

var bucketLabels = map[Bucket]string{
	BucketVeryHigh: "very-high",
	BucketHigh:     "high",
	BucketMedium:   "medium",
	BucketLow:      "low",
	BucketMinimal:  "minimal",
}

// Color returns the fill color bound to the bucket.
// Unknown buckets fall back to the lightest color.
func (b Bucket) Color() string {
	if c, ok := bucketColors[b]; ok {
		return c
	}
	return bucketColors[BucketMinimal]
}

// Label returns a short human-readable name for the bucket.
func (b Bucket) Label() string {
	if l, ok := bucketLabels[b]; ok {
		return l
	}
	return bucketLabels[BucketMinimal]
}

// String implements fmt.Stringer.
func (b Bucket) String() string {
	return b.Label()
}

// Style holds the path options of one rendered feature.
// JSON names follow Leaflet's path options so the value can be handed to a map page as is.
type Style struct {
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	Color       string  `json:"color"`
	DashArray   string  `json:"dashArray"`
	FillOpacity float64 `json:"fillOpacity"`
	FillColor   string  `json:"fillColor"`
}

// IsZero reports whether no style has been applied, meaning the map's defaults are used.
func (s Style) IsZero() bool {
	return s == Style{}
}

// TripFeature is one geographic region plus the trip density observed over the queried window.
type TripFeature struct {
	ID         string         // GeoJSON id or zone id, may be empty
	Geometry   orb.Geometry   // Polygon or MultiPolygon of the region
	Density    float64        // Trip count for the region
	HasDensity bool           // False when the density property was missing or not numeric
	Properties map[string]any // Remaining raw properties as received
}

// Anchor returns the point a popup for this feature is attached to (center of its bounds).
func (f TripFeature) Anchor() orb.Point {
	if f.Geometry == nil {
		return orb.Point{}
	}
	return f.Geometry.Bound().Center()
}

// TripFeatureCollection is an ordered, immutable set of trip features.
type TripFeatureCollection struct {
	Features []TripFeature
}

// Len returns the number of features.
func (c TripFeatureCollection) Len() int {
	return len(c.Features)
}

// TripDensity is one row of the backend's aggregated density endpoint.
type TripDensity struct {
	LocationID int `json:"location_id"`
	Density    int `json:"density"`
}

// TimeWindow is the temporal filter of a backend query.
// Use the New*Window constructors; windows are immutable values.
type TimeWindow struct {
	Kind      WindowKind
	Instant   time.Time // Set for InstantWindow
	Start     time.Time // Set for RangeWindow and HourRangeWindow
	End       time.Time // Set for RangeWindow and HourRangeWindow
	HourSpan  int       // Used by InstantWindow and RangeWindow
	StartHour int       // Used by HourRangeWindow
	EndHour   int       // Used by HourRangeWindow
}

// NewInstantWindow builds a single instant window. A zero hour span means the default of 1.
func NewInstantWindow(instant time.Time, hourSpan int) TimeWindow {
	if hourSpan == 0 {
		hourSpan = DefaultHourSpan
	}
	return TimeWindow{Kind: InstantWindow, Instant: instant, HourSpan: hourSpan}
}

// NewRangeWindow builds a start/end window with the default hour span.
// Start is not required to precede end.
func NewRangeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Kind: RangeWindow, Start: start, End: end, HourSpan: DefaultHourSpan}
}

// NewHourRangeWindow builds a start/end window that is further filtered to an hour-of-day range.
func NewHourRangeWindow(start, end time.Time, startHour, endHour int) TimeWindow {
	return TimeWindow{Kind: HourRangeWindow, Start: start, End: end, StartHour: startHour, EndHour: endHour}
}

// WithHourSpan returns a copy of the window using the given hour span.
func (w TimeWindow) WithHourSpan(hourSpan int) TimeWindow {
	w.HourSpan = hourSpan
	return w
}

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TileLayer describes the base raster tile provider of the map.
type TileLayer struct {
	URLTemplate string `json:"url_template"`
	MaxZoom     int    `json:"max_zoom"`
	Attribution string `json:"attribution"`
}

// Popup is the informational bubble opened on a selected feature.
type Popup struct {
	LayerIndex int    `json:"layer_index"`
	Anchor     LatLng `json:"anchor"`
	Content    string `json:"content"`
}
