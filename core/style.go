package core

import (
	"strconv"

	"github.com/pynyc/tripmap/schema"
)

// Style constants shared by both style profiles.
const (
	baseWeight      = 2
	baseOpacity     = 1
	baseColor       = "white"
	baseDashArray   = "3"
	fillOpacity     = 0.7
	highlightWeight = 5
	highlightColor  = "#666"
)

// Styler derives the visual style of a feature. It holds no state.
type Styler struct{}

// Base returns the resting style of a feature, filled by its density bucket.
func (Styler) Base(f schema.TripFeature) schema.Style {
	return schema.Style{
		Weight:      baseWeight,
		Opacity:     baseOpacity,
		Color:       baseColor,
		DashArray:   baseDashArray,
		FillOpacity: fillOpacity,
		FillColor:   Classify(f.Density).Color(),
	}
}

// Highlight returns the style of the selected feature: heavier solid gray stroke, same fill.
func (s Styler) Highlight(f schema.TripFeature) schema.Style {
	st := s.Base(f)
	st.Weight = highlightWeight
	st.Color = highlightColor
	st.DashArray = ""
	st.FillOpacity = fillOpacity
	return st
}

// Unstyled returns the empty style used when boundaries are drawn with the map defaults.
func Unstyled() schema.Style {
	return schema.Style{}
}

// PopupContent is the label shown in the popup of a selected feature.
func PopupContent(f schema.TripFeature) string {
	return strconv.FormatFloat(f.Density, 'f', -1, 64)
}
