package core

import (
	"fmt"

	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/schema"
)

// Layer is one rendered feature of an overlay.
type Layer struct {
	Feature schema.TripFeature
	Style   schema.Style
	Order   int // stacking order, higher renders on top

	onClick func() error
}

// Overlay is the in-memory rendering of a feature collection on top of the base map.
// Only presentation state changes here; features are never modified.
type Overlay struct {
	layers []Layer
	popup  *schema.Popup
	top    int
}

var _ contract.Overlay = &Overlay{} // Compile-time check

// NewOverlay renders every feature of the collection with the given style function.
func NewOverlay(c schema.TripFeatureCollection, style func(schema.TripFeature) schema.Style) *Overlay {
	o := &Overlay{layers: make([]Layer, c.Len())}
	for i, f := range c.Features {
		o.layers[i] = Layer{Feature: f, Style: style(f), Order: i}
	}
	o.top = c.Len() - 1
	return o
}

// Len implements contract.Overlay.
func (o *Overlay) Len() int {
	return len(o.layers)
}

// Feature implements contract.Overlay.
func (o *Overlay) Feature(i int) schema.TripFeature {
	return o.layers[i].Feature
}

// SetStyle implements contract.Overlay.
func (o *Overlay) SetStyle(i int, s schema.Style) {
	o.layers[i].Style = s
}

// BringToFront implements contract.Overlay.
func (o *Overlay) BringToFront(i int) {
	if o.layers[i].Order == o.top {
		return
	}
	o.top++
	o.layers[i].Order = o.top
}

// OpenPopup implements contract.Overlay. Only one popup is open at a time.
func (o *Overlay) OpenPopup(i int, content string) {
	anchor := o.layers[i].Feature.Anchor()
	o.popup = &schema.Popup{
		LayerIndex: i,
		Anchor:     schema.LatLng{Lat: anchor.Lat(), Lng: anchor.Lon()},
		Content:    content,
	}
}

// Layer returns a copy of layer i.
func (o *Overlay) Layer(i int) Layer {
	return o.layers[i]
}

// Popup returns the open popup, or nil.
func (o *Overlay) Popup() *schema.Popup {
	return o.popup
}

// OnClick registers the click handler of layer i, replacing any previous one.
func (o *Overlay) OnClick(i int, handler func() error) {
	o.layers[i].onClick = handler
}

// Interactive reports whether any layer has a click handler.
func (o *Overlay) Interactive() bool {
	for _, l := range o.layers {
		if l.onClick != nil {
			return true
		}
	}
	return false
}

// Click dispatches a click event to layer i.
func (o *Overlay) Click(i int) error {
	if i < 0 || i >= len(o.layers) {
		return fmt.Errorf("click %d of %d: %w", i, len(o.layers), ErrNoSuchFeature)
	}
	if o.layers[i].onClick == nil {
		return nil
	}
	return o.layers[i].onClick()
}

// IndexOf returns the index of the first layer whose feature has the given id.
func (o *Overlay) IndexOf(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i, l := range o.layers {
		if l.Feature.ID == id {
			return i, true
		}
	}
	return -1, false
}
