package core

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pynyc/tripmap/schema"
)

// Classify maps a trip density onto its choropleth bucket.
// Thresholds are strict and evaluated from the densest tier down; anything that
// does not clear the lowest threshold (including negative and NaN) is minimal.
func Classify(density float64) schema.Bucket {
	switch {
	case density > 100:
		return schema.BucketVeryHigh
	case density > 50:
		return schema.BucketHigh
	case density > 20:
		return schema.BucketMedium
	case density > 10:
		return schema.BucketLow
	default:
		return schema.BucketMinimal
	}
}

// DensityValue converts a raw GeoJSON property into a density.
// The boolean is false when the value was missing or not numeric, in which case 0 is returned.
func DensityValue(v any) (float64, bool) {
	var d float64
	switch n := v.(type) {
	case float64:
		d = n
	case float32:
		d = float64(n)
	case int:
		d = float64(n)
	case int64:
		d = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		d = f
	case string:
		// Backends occasionally serialize aggregates as strings.
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		d = f
	default:
		return 0, false
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, false
	}
	return d, true
}
