package outwriter

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/paulmach/orb/geojson"
	"github.com/pynyc/tripmap/schema"
)

// Property names added to exported features.
const (
	propStyle       = "style"
	propBucket      = "bucket"
	propHasDensity  = "has_density"
	propHighlighted = "highlighted"
	propOrder       = "order"
	propIndex       = "layer_index"
)

// SurfaceFeatureCollection converts the layers of a surface into a GeoJSON collection.
// Each feature keeps its original properties and carries its density, bucket and current style.
// Layers are ordered by stacking order so a renderer draws the top layer last.
func SurfaceFeatureCollection(res schema.SurfaceResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range stackOrder(res.Layers) {
		f := geojson.NewFeature(l.Geometry)
		if l.ID != "" {
			f.ID = l.ID
		}
		for k, v := range l.Properties {
			f.Properties[k] = v
		}
		f.Properties[propIndex] = l.Index
		f.Properties[schema.DensityProperty] = l.Density
		f.Properties[propHasDensity] = l.HasDensity
		if l.Bucket != "" {
			f.Properties[propBucket] = l.Bucket
		}
		f.Properties[propHighlighted] = l.Highlighted
		f.Properties[propOrder] = l.Order
		if !l.Style.IsZero() {
			f.Properties[propStyle] = l.Style
		}
		fc.Append(f)
	}
	return fc
}

// stackOrder returns the layers sorted by ascending stacking order without reordering the input.
func stackOrder(layers []schema.LayerResult) []schema.LayerResult {
	out := slices.Clone(layers)
	slices.SortStableFunc(out, func(a, b schema.LayerResult) int { return cmp.Compare(a.Order, b.Order) })
	return out
}

// writeSurfaceGeoJSON writes the styled overlay as a GeoJSON FeatureCollection.
func writeSurfaceGeoJSON(w io.Writer, res schema.SurfaceResult) error {
	data, err := SurfaceFeatureCollection(res).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
