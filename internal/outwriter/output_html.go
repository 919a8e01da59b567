package outwriter

import (
	"fmt"
	"html/template"
	"io"

	"github.com/paulmach/orb/geojson"
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/schema"
)

// Property names used by the page script.
const (
	propBaseStyle      = "base_style"
	propHighlightStyle = "highlight_style"
	propPopup          = "popup"
)

// LeafletVersion is the Leaflet release the generated page loads.
const LeafletVersion = "1.9.4"

var mapPage = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>NYC taxi trip density</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@{{.Leaflet}}/dist/leaflet.css">
<style>
html, body, #map { height: 100%; margin: 0; }
.notice { position: absolute; top: 10px; left: 50px; z-index: 1000; padding: 6px 10px; background: #fff3cd; border: 1px solid #e0c46c; font: 13px sans-serif; }
</style>
</head>
<body>
{{range .Result.Notices}}<div class="notice">{{.}}</div>
{{end}}<div id="map" data-run-id="{{.Result.RunID}}"></div>
<script src="https://unpkg.com/leaflet@{{.Leaflet}}/dist/leaflet.js"></script>
<script>
const map = L.map('map').setView([{{.Result.Center.Lat}}, {{.Result.Center.Lng}}], {{.Result.Zoom}});
L.tileLayer({{.Result.Tiles.URLTemplate}}, {
  maxZoom: {{.Result.Tiles.MaxZoom}},
  attribution: {{.Result.Tiles.Attribution}},
}).addTo(map);
{{if .Data}}
const data = {{.Data}};
let current = null;
const overlay = L.geoJSON(data, {
  style: (f) => f.properties.style || {},
  onEachFeature: (f, layer) => {
    if (!f.properties.highlight_style) {
      return;
    }
    if (f.properties.highlighted) {
      current = layer;
    }
    layer.on('click', () => {
      if (current) {
        current.setStyle(current.feature.properties.base_style);
      }
      layer.setStyle(f.properties.highlight_style);
      layer.bringToFront();
      layer.bindPopup(f.properties.popup).openPopup();
      current = layer;
    });
  },
}).addTo(map);
document.addEventListener('keydown', (e) => {
  if (e.key !== 'Escape') {
    return;
  }
  overlay.eachLayer((layer) => {
    if (layer.feature.properties.base_style) {
      layer.setStyle(layer.feature.properties.base_style);
    }
  });
  current = null;
});
{{end}}{{with .Result.Popup}}
L.popup().setLatLng([{{.Anchor.Lat}}, {{.Anchor.Lng}}]).setContent({{.Content}}).openOn(map);
{{end}}
</script>
</body>
</html>
`))

type mapPageData struct {
	Leaflet string
	Result  schema.SurfaceResult
	Data    *geojson.FeatureCollection // nil when the surface has no overlay
}

// writeSurfaceHTML writes a standalone Leaflet page showing the surface.
// Interactive layers carry both of their styles so the page can highlight on click.
func writeSurfaceHTML(w io.Writer, res schema.SurfaceResult) error {
	page := mapPageData{Leaflet: LeafletVersion, Result: res}
	if len(res.Layers) > 0 {
		page.Data = interactiveCollection(res)
	}
	if err := mapPage.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render map page: %w", err)
	}
	return nil
}

// interactiveCollection adds the base style, highlight style and popup text to every styled feature.
func interactiveCollection(res schema.SurfaceResult) *geojson.FeatureCollection {
	byIndex := make(map[int]schema.LayerResult, len(res.Layers))
	for _, l := range res.Layers {
		byIndex[l.Index] = l
	}

	styler := core.Styler{}
	fc := SurfaceFeatureCollection(res)
	for _, f := range fc.Features {
		idx, _ := f.Properties[propIndex].(int)
		l, ok := byIndex[idx]
		if !ok || l.Style.IsZero() {
			continue
		}
		tf := schema.TripFeature{ID: l.ID, Density: l.Density, HasDensity: l.HasDensity}
		f.Properties[propBaseStyle] = styler.Base(tf)
		f.Properties[propHighlightStyle] = styler.Highlight(tf)
		f.Properties[propPopup] = core.PopupContent(tf)
	}
	return fc
}
