// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/pynyc/tripmap/schema"
)

// TripFetcher defines the backend reads needed to compose a map.
// This allows the composition logic to be tested without a running backend.
type TripFetcher interface {
	// FetchTrips returns the trip density collection for a query built from a time window.
	FetchTrips(ctx context.Context, query string) (schema.TripFeatureCollection, error)

	// FetchBoundaries returns the zone boundaries served by the static asset collaborator.
	FetchBoundaries(ctx context.Context) (schema.TripFeatureCollection, error)

	// FetchDensities returns per-zone trip counts for an hour-range query.
	FetchDensities(ctx context.Context, query string) ([]schema.TripDensity, error)
}

// Overlay is the rendered layer set that the highlighter mutates.
// Indexes refer to the feature order of the underlying collection.
type Overlay interface {
	// Len returns the number of layers.
	Len() int

	// Feature returns the feature rendered by layer i.
	Feature(i int) schema.TripFeature

	// SetStyle replaces the style of layer i.
	SetStyle(i int, style schema.Style)

	// BringToFront renders layer i above its siblings.
	BringToFront(i int)

	// OpenPopup opens the single informational popup anchored to layer i.
	OpenPopup(i int, content string)
}
