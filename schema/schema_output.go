package schema

import "github.com/paulmach/orb"

// LayerResult is the presentation view of one rendered feature.
type LayerResult struct {
	Index       int     `json:"index"`
	ID          string  `json:"id,omitempty"`
	Density     float64 `json:"density"`
	HasDensity  bool    `json:"has_density"`
	Bucket      string  `json:"bucket,omitempty"` // empty for unstyled layers
	Highlighted bool    `json:"highlighted"`
	Order       int     `json:"order"` // stacking order, higher renders on top
	Style       Style   `json:"style"`

	Geometry   orb.Geometry   `json:"-"`
	Properties map[string]any `json:"-"`
}

// SurfaceResult is the presentation view of a composed map.
type SurfaceResult struct {
	RunID       string        `json:"run_id"`
	Query       string        `json:"query,omitempty"`
	Center      LatLng        `json:"center"`
	Zoom        int           `json:"zoom"`
	Tiles       TileLayer     `json:"tiles"`
	Layers      []LayerResult `json:"layers"`
	Highlighted *int          `json:"highlighted,omitempty"`
	Popup       *Popup        `json:"popup,omitempty"`
	Notices     []string      `json:"notices,omitempty"`
}

// BucketCounts tallies how many layers fall into each bucket label.
func BucketCounts(layers []LayerResult) map[string]int {
	counts := make(map[string]int, len(AllBuckets))
	for _, b := range AllBuckets {
		counts[b.Label()] = 0
	}
	for _, l := range layers {
		if l.Bucket != "" {
			counts[l.Bucket]++
		}
	}
	return counts
}
