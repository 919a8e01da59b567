package core

import (
	"fmt"
	"strconv"

	"github.com/pynyc/tripmap/schema"
)

// JoinDensities attaches aggregated trip counts to zone boundaries.
// Zones are matched on idProperty (falling back to the feature id); zones without
// a count keep density 0 and are marked as having no density. Duplicate rows are summed.
// The input collection is left untouched.
func JoinDensities(zones schema.TripFeatureCollection, rows []schema.TripDensity, idProperty string) schema.TripFeatureCollection {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[strconv.Itoa(r.LocationID)] += r.Density
	}

	out := make([]schema.TripFeature, len(zones.Features))
	for i, z := range zones.Features {
		f := z
		id := zoneID(z, idProperty)
		if f.ID == "" {
			f.ID = id
		}
		if n, ok := counts[id]; ok {
			f.Density = float64(n)
			f.HasDensity = true
		} else {
			f.Density = 0
			f.HasDensity = false
		}
		out[i] = f
	}
	return schema.TripFeatureCollection{Features: out}
}

// zoneID extracts the zone identifier of a boundary feature as a normalized string.
func zoneID(f schema.TripFeature, idProperty string) string {
	if v, ok := f.Properties[idProperty]; ok && v != nil {
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64)
		case string:
			// Zone files often store numeric ids as strings, sometimes zero padded.
			if k, err := strconv.Atoi(n); err == nil {
				return strconv.Itoa(k)
			}
			return n
		default:
			return fmt.Sprint(n)
		}
	}
	return f.ID
}
