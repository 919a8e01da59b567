// Package core has the choropleth pipeline: classification, styling, highlighting,
// query building and map composition.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/schema"
)

// ErrNoOverlay is returned by interactions on a surface that has no overlay attached.
var ErrNoOverlay = errors.New("no overlay attached")

// Surface is a composed map: base tiles, an optional overlay and its interaction state.
type Surface struct {
	RunID       string
	Center      schema.LatLng
	Zoom        int
	Tiles       schema.TileLayer
	Window      schema.TimeWindow
	Query       string
	Overlay     *Overlay
	Highlighter *Highlighter // nil for non-interactive overlays
	Notices     []string
	FetchErr    error
}

// newSurface builds the base map, showing only tiles.
func newSurface(cfg *contract.Config) *Surface {
	return &Surface{
		RunID:  uuid.NewString(),
		Center: cfg.Center,
		Zoom:   cfg.Zoom,
		Tiles:  cfg.Tiles,
	}
}

// Degraded reports whether the overlay could not be built.
func (s *Surface) Degraded() bool {
	return s.FetchErr != nil
}

// fail records a fetch failure on the surface and logs it. The base map stays usable.
func (s *Surface) fail(ctx context.Context, what string, err error) {
	s.FetchErr = err
	s.Notices = append(s.Notices, fmt.Sprintf("%s unavailable, showing base map only: %v", what, err))
	if !shouldSuppressHeader(ctx) {
		contract.LogWarn(what+" unavailable", err)
	}
}

// attachInteractive renders the collection with base styles and wires one click
// handler per layer to the highlighter.
func (s *Surface) attachInteractive(c schema.TripFeatureCollection) {
	styler := Styler{}
	s.Overlay = NewOverlay(c, styler.Base)
	s.Highlighter = NewHighlighter(s.Overlay, styler)
	for i := range s.Overlay.Len() {
		s.Overlay.OnClick(i, func() error { return s.Highlighter.Select(i) })
	}
}

// Compose builds the trip density map once: base surface, default or explicit window,
// query, fetch, then the styled interactive overlay. Fetch failures leave a degraded
// surface with a notice instead of an error.
func Compose(ctx context.Context, cfg *contract.Config, fetcher contract.TripFetcher) *Surface {
	s := newSurface(cfg)
	s.Window = ResolveWindow(ctx, cfg)
	s.Query = BuildQuery(s.Window)
	logComposeHeader(ctx, s)

	var (
		collection schema.TripFeatureCollection
		err        error
	)
	switch cfg.Source {
	case schema.DensitySource:
		collection, err = fetchJoined(ctx, cfg, fetcher, s.Query)
	default:
		collection, err = fetcher.FetchTrips(ctx, s.Query)
	}
	if err != nil {
		s.fail(ctx, "trip data", err)
		return s
	}
	s.attachInteractive(collection)
	return s
}

// ComposeBoundaries builds the standalone variant: zone boundaries drawn with the
// map's default style, no trip query and no interaction.
func ComposeBoundaries(ctx context.Context, cfg *contract.Config, fetcher contract.TripFetcher) *Surface {
	s := newSurface(cfg)
	logComposeHeader(ctx, s)
	zones, err := fetcher.FetchBoundaries(ctx)
	if err != nil {
		s.fail(ctx, "zone boundaries", err)
		return s
	}
	s.Overlay = NewOverlay(zones, func(schema.TripFeature) schema.Style { return Unstyled() })
	return s
}

// fetchJoined reads per-zone counts and zone boundaries concurrently and joins them.
func fetchJoined(ctx context.Context, cfg *contract.Config, fetcher contract.TripFetcher, query string) (schema.TripFeatureCollection, error) {
	var (
		wg               sync.WaitGroup
		rows             []schema.TripDensity
		zones            schema.TripFeatureCollection
		rowsErr, zoneErr error
	)
	wg.Go(func() { rows, rowsErr = fetcher.FetchDensities(ctx, query) })
	wg.Go(func() { zones, zoneErr = fetcher.FetchBoundaries(ctx) })
	wg.Wait()

	if rowsErr != nil {
		return schema.TripFeatureCollection{}, rowsErr
	}
	if zoneErr != nil {
		return schema.TripFeatureCollection{}, zoneErr
	}
	return JoinDensities(zones, rows, cfg.ZoneIDProperty), nil
}

// ResolveWindow returns the explicit window from cfg or derives the default one.
func ResolveWindow(ctx context.Context, cfg *contract.Config) schema.TimeWindow {
	if cfg.HasExplicitWindow() {
		return cfg.Window
	}
	w := DefaultWindow(nowFrom(ctx), cfg.ReferenceYear, cfg.WindowKind)
	switch w.Kind {
	case schema.HourRangeWindow:
		w.StartHour, w.EndHour = cfg.StartHour, cfg.EndHour
	default:
		if cfg.HourSpan != 0 {
			w.HourSpan = cfg.HourSpan
		}
	}
	return w
}

// Select dispatches a click on layer i.
func (s *Surface) Select(i int) error {
	if s.Overlay == nil {
		return ErrNoOverlay
	}
	if !s.Overlay.Interactive() {
		return fmt.Errorf("overlay is not interactive: %w", ErrNoOverlay)
	}
	return s.Overlay.Click(i)
}

// Reset clears any highlight on the overlay.
func (s *Surface) Reset() error {
	if s.Overlay == nil || s.Highlighter == nil {
		return ErrNoOverlay
	}
	s.Highlighter.Reset()
	return nil
}

// Result returns the presentation view of the surface.
func (s *Surface) Result() schema.SurfaceResult {
	out := schema.SurfaceResult{
		RunID:   s.RunID,
		Query:   s.Query,
		Center:  s.Center,
		Zoom:    s.Zoom,
		Tiles:   s.Tiles,
		Layers:  []schema.LayerResult{},
		Notices: s.Notices,
	}
	if s.Overlay == nil {
		return out
	}
	current, highlighted := -1, false
	if s.Highlighter != nil {
		current, highlighted = s.Highlighter.Current()
	}
	if highlighted {
		out.Highlighted = &current
	}
	out.Popup = s.Overlay.Popup()
	for i := range s.Overlay.Len() {
		l := s.Overlay.Layer(i)
		layer := schema.LayerResult{
			Index:       i,
			ID:          l.Feature.ID,
			Density:     l.Feature.Density,
			HasDensity:  l.Feature.HasDensity,
			Highlighted: highlighted && i == current,
			Order:       l.Order,
			Style:       l.Style,
			Geometry:    l.Feature.Geometry,
			Properties:  l.Feature.Properties,
		}
		// Unstyled boundary layers were never classified.
		if !l.Style.IsZero() {
			layer.Bucket = Classify(l.Feature.Density).Label()
		}
		out.Layers = append(out.Layers, layer)
	}
	return out
}

// logComposeHeader prints the progress header to stderr.
func logComposeHeader(ctx context.Context, s *Surface) {
	if shouldSuppressHeader(ctx) {
		return
	}
	if s.Query != "" {
		_, _ = fmt.Fprintf(os.Stderr, "🗺️  tripmap: Querying trips with %s\n", s.Query)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "🗺️  tripmap: Loading zone boundaries\n")
}
