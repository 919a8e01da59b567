package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minLng, minLat float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minLng, minLat}, {minLng + 1, minLat}, {minLng + 1, minLat + 1}, {minLng, minLat + 1}, {minLng, minLat},
	}}
}

// sampleSurface composes a surface with two zones and the second one highlighted.
func sampleSurface(t *testing.T) schema.SurfaceResult {
	t.Helper()
	c := schema.TripFeatureCollection{Features: []schema.TripFeature{
		{ID: "1", Geometry: square(-74, 40), Density: 27, HasDensity: true, Properties: map[string]any{"zone": "Newark Airport"}},
		{ID: "2", Geometry: square(-73, 40), Density: 120, HasDensity: true, Properties: map[string]any{"zone": "Jamaica Bay"}},
	}}
	overlay := core.NewOverlay(c, core.Styler{}.Base)
	h := core.NewHighlighter(overlay, core.Styler{})
	require.NoError(t, h.Select(0))

	s := &core.Surface{
		RunID:       "run-1",
		Center:      schema.LatLng{Lat: 40.7128, Lng: -74.006},
		Zoom:        10,
		Tiles:       schema.TileLayer{URLTemplate: contract.DefaultTileURL, MaxZoom: 19, Attribution: contract.DefaultAttribution},
		Query:       "date=2023-01-12T15:30:45&hour_span=1",
		Overlay:     overlay,
		Highlighter: h,
	}
	return s.Result()
}

func degradedSurface() schema.SurfaceResult {
	return schema.SurfaceResult{
		RunID:   "run-2",
		Center:  schema.LatLng{Lat: 40.7128, Lng: -74.006},
		Zoom:    10,
		Layers:  []schema.LayerResult{},
		Notices: []string{"trip data unavailable, showing base map only: status 500"},
	}
}

func TestWriteSurfaceTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Width: 120}
	require.NoError(t, writeSurfaceTable(&buf, sampleSurface(t), cfg))

	out := buf.String()
	assert.Contains(t, out, "Newark Airport")
	assert.Contains(t, out, "very-high")
	assert.Contains(t, out, "#E31A1C")
	assert.Contains(t, out, "Showing 2 zones (very-high: 1, high: 0, medium: 1, low: 0, minimal: 0)")
	assert.Contains(t, out, "Popup on layer 0: 27")
	assert.Contains(t, out, "Query: date=2023-01-12T15:30:45&hour_span=1")
}

func TestWriteSurfaceTableDegraded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSurfaceTable(&buf, degradedSurface(), &contract.Config{Width: 80}))
	out := buf.String()
	assert.Contains(t, out, "Showing 0 zones")
	assert.Contains(t, out, "status 500")
}

func TestWriteSurfaceCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSurfaceCSV(&buf, sampleSurface(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"index", "id", "zone", "density", "has_density", "bucket", "fill_color", "highlighted", "order"}, records[0])
	assert.Equal(t, []string{"0", "1", "Newark Airport", "27", "true", "medium", "#E31A1C", "true", "2"}, records[1])
	assert.Equal(t, []string{"1", "2", "Jamaica Bay", "120", "true", "very-high", "#800026", "false", "1"}, records[2])
}

func TestSurfaceFeatureCollection(t *testing.T) {
	fc := SurfaceFeatureCollection(sampleSurface(t))
	require.Len(t, fc.Features, 2)

	// The highlighted layer was brought to front, so it is last.
	top := fc.Features[1]
	assert.Equal(t, "1", top.ID)
	assert.Equal(t, true, top.Properties[propHighlighted])
	assert.Equal(t, "Newark Airport", top.Properties["zone"])
	assert.Equal(t, 27.0, top.Properties[schema.DensityProperty])
	st, ok := top.Properties[propStyle].(schema.Style)
	require.True(t, ok)
	assert.Equal(t, 5.0, st.Weight)
}

func TestWriteSurfaceGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSurfaceGeoJSON(&buf, sampleSurface(t)))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "very-high", fc.Features[0].Properties[propBucket])
	style, ok := fc.Features[0].Properties[propStyle].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#800026", style["fillColor"])
	assert.Equal(t, "3", style["dashArray"])
}

func TestWriteSurfaceHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSurfaceHTML(&buf, sampleSurface(t)))

	page := buf.String()
	assert.Contains(t, page, "leaflet@"+LeafletVersion)
	assert.Contains(t, page, `data-run-id="run-1"`)
	assert.Contains(t, page, "L.geoJSON(data")
	assert.Contains(t, page, `"highlight_style"`)
	assert.Contains(t, page, `"base_style"`)
	assert.Contains(t, page, "L.popup()")
}

func TestWriteSurfaceHTMLDegraded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSurfaceHTML(&buf, degradedSurface()))

	page := buf.String()
	assert.Contains(t, page, "L.tileLayer(")
	assert.Contains(t, page, `<div class="notice">trip data unavailable, showing base map only: status 500</div>`)
	assert.NotContains(t, page, "L.geoJSON(data")
	assert.NotContains(t, page, "L.popup()")
}

func TestWriteSurfaceResultToFile(t *testing.T) {
	tests := []struct {
		output schema.OutputMode
		check  func(t *testing.T, data []byte)
	}{
		{schema.JSONOut, func(t *testing.T, data []byte) {
			var res schema.SurfaceResult
			require.NoError(t, json.Unmarshal(data, &res))
			assert.Equal(t, "run-1", res.RunID)
			require.NotNil(t, res.Highlighted)
			assert.Equal(t, 0, *res.Highlighted)
			assert.Len(t, res.Layers, 2)
		}},
		{schema.CSVOut, func(t *testing.T, data []byte) {
			assert.True(t, strings.HasPrefix(string(data), "index,id,zone"))
		}},
		{schema.GeoJSONOut, func(t *testing.T, data []byte) {
			assert.Contains(t, string(data), `"FeatureCollection"`)
		}},
		{schema.HTMLOut, func(t *testing.T, data []byte) {
			assert.Contains(t, string(data), "<!DOCTYPE html>")
		}},
		{schema.TextOut, func(t *testing.T, data []byte) {
			assert.Contains(t, string(data), "Showing 2 zones")
		}},
		{schema.ParquetOut, func(t *testing.T, data []byte) {
			assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+string(tt.output))
			cfg := &contract.Config{Output: tt.output, OutputFile: path, Width: 100}
			require.NoError(t, WriteSurfaceResult(sampleSurface(t), cfg))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestWriteSurfaceParquetRequiresFile(t *testing.T) {
	err := writeSurfaceParquet(sampleSurface(t), "")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	assert.Error(t, writeJSON(&buf, make(chan int)))
}

func TestWriteWithFileBadPath(t *testing.T) {
	err := writeWithFile(filepath.Join(t.TempDir(), "missing", "out.txt"), func(w io.Writer) error { return nil }, "Wrote")
	assert.Error(t, err)
}

func TestFormatDensity(t *testing.T) {
	assert.Equal(t, "27", formatDensity(27))
	assert.Equal(t, "0.5", formatDensity(0.5))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	assert.Equal(t, 12, GetMaxTableNameWidth(&contract.Config{Width: 50}))
	assert.Equal(t, 20, GetMaxTableNameWidth(&contract.Config{Width: 80}))
	assert.Equal(t, 40, GetMaxTableNameWidth(&contract.Config{Width: 300}))
}

func TestGetMaxTableNameWidthForFileOutput(t *testing.T) {
	cfg := &contract.Config{OutputFile: filepath.Join(t.TempDir(), "zones.txt")}
	assert.Equal(t, 20, GetMaxTableNameWidth(cfg), "file output uses the default width")

	cfg.Width = 300
	assert.Equal(t, 40, GetMaxTableNameWidth(cfg), "an explicit width still wins")
}

func TestWriteQueryResult(t *testing.T) {
	w, err := core.ParseQuery("startDate=2022-12-12T00:00:00&endDate=2023-01-12T00:00:00&startTime=7&endTime=9")
	require.NoError(t, err)
	query := core.BuildQuery(w)

	path := filepath.Join(t.TempDir(), "query.json")
	require.NoError(t, WriteQueryResult(query, w, &contract.Config{Output: schema.JSONOut, OutputFile: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var res QueryResult
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, query, res.Query)
	assert.Equal(t, schema.HourRangeWindow, res.Kind)
	assert.Equal(t, "2022-12-12T00:00:00", res.Start)
	require.NotNil(t, res.StartHour)
	assert.Equal(t, 7, *res.StartHour)
	assert.Equal(t, 9, *res.EndHour)
}

func TestWriteQueryTableAndCSV(t *testing.T) {
	w := schema.NewInstantWindow(mustParseQueryTime(t, "2023-01-12T15:30:45"), 1)
	res := NewQueryResult(core.BuildQuery(w), w)

	var table bytes.Buffer
	require.NoError(t, writeQueryTable(&table, res))
	assert.Contains(t, table.String(), "2023-01-12T15:30:45")
	assert.Contains(t, table.String(), "Query: date=2023-01-12T15:30:45&hour_span=1")

	var out bytes.Buffer
	require.NoError(t, writeQueryCSV(&out, res))
	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"query", "date=2023-01-12T15:30:45&hour_span=1"}, records[1])
	assert.Equal(t, []string{"kind", "instant"}, records[2])
}

func mustParseQueryTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := core.ParseQueryTime(s)
	require.NoError(t, err)
	return ts
}
