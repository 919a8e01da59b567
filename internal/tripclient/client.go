// Package tripclient fetches trip density data and zone boundaries from the backend.
package tripclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/schema"
)

// Backend paths relative to the configured base URLs.
const (
	TripsPath      = "/trips"
	DensityPath    = "/trips/density"
	BoundariesPath = "/static/taxi_zones.geojson"
)

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 512

// Client reads from the trips backend. Every call issues a new request; nothing is cached
// and nothing is retried.
type Client struct {
	httpClient     *http.Client
	tripsURL       string
	densityURL     string
	boundariesURL  string
	boundariesFile string
	strictDensity  bool
}

var _ contract.TripFetcher = &Client{} // Compile-time check

// NewClient creates a client for the endpoints named by cfg.
// A zero HTTPTimeout leaves requests unbounded.
func NewClient(cfg *contract.Config) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.HTTPTimeout})
}

// NewClientWithHTTP creates a client that sends requests through hc.
func NewClientWithHTTP(cfg *contract.Config, hc *http.Client) *Client {
	return &Client{
		httpClient:     hc,
		tripsURL:       cfg.BaseURL + TripsPath,
		densityURL:     cfg.BaseURL + DensityPath,
		boundariesURL:  cfg.StaticURL + BoundariesPath,
		boundariesFile: cfg.BoundariesFile,
		strictDensity:  cfg.StrictDensity,
	}
}

// FetchTrips implements contract.TripFetcher.
func (c *Client) FetchTrips(ctx context.Context, query string) (schema.TripFeatureCollection, error) {
	url := withQuery(c.tripsURL, query)
	body, err := c.get(ctx, url)
	if err != nil {
		return schema.TripFeatureCollection{}, err
	}
	fc, err := DecodeFeatureCollection(body, c.strictDensity)
	if err != nil {
		return schema.TripFeatureCollection{}, &FetchError{Kind: DecodeError, URL: url, Err: err}
	}
	return fc, nil
}

// FetchBoundaries implements contract.TripFetcher.
// A configured local file takes precedence over the static asset URL.
func (c *Client) FetchBoundaries(ctx context.Context) (schema.TripFeatureCollection, error) {
	source := c.boundariesURL
	var body []byte
	var err error
	if c.boundariesFile != "" {
		source = c.boundariesFile
		body, err = os.ReadFile(c.boundariesFile)
		if err != nil {
			return schema.TripFeatureCollection{}, &FetchError{Kind: NetworkError, URL: source, Err: err}
		}
	} else {
		body, err = c.get(ctx, source)
		if err != nil {
			return schema.TripFeatureCollection{}, err
		}
	}
	fc, err := DecodeFeatureCollection(body, false)
	if err != nil {
		return schema.TripFeatureCollection{}, &FetchError{Kind: DecodeError, URL: source, Err: err}
	}
	return fc, nil
}

// FetchDensities implements contract.TripFetcher.
func (c *Client) FetchDensities(ctx context.Context, query string) ([]schema.TripDensity, error) {
	url := withQuery(c.densityURL, query)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var rows []schema.TripDensity
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &FetchError{Kind: DecodeError, URL: url, Err: err}
	}
	return rows, nil
}

// get performs one GET request and returns the full body of a 2xx response.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: NetworkError, URL: url, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: NetworkError, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Kind:       ResponseError,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: NetworkError, URL: url, Err: fmt.Errorf("reading response: %w", err)}
	}
	return body, nil
}

func withQuery(base, query string) string {
	query = strings.TrimPrefix(query, "?")
	if query == "" {
		return base
	}
	return base + "?" + query
}

// DecodeFeatureCollection parses a GeoJSON FeatureCollection into trip features.
// Features with a missing or non-numeric density get density 0 unless strict is set,
// in which case they fail the whole decode.
func DecodeFeatureCollection(data []byte, strict bool) (schema.TripFeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return schema.TripFeatureCollection{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if head.Type != "FeatureCollection" {
		return schema.TripFeatureCollection{}, fmt.Errorf("expected a FeatureCollection, got type %q", head.Type)
	}

	raw, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return schema.TripFeatureCollection{}, fmt.Errorf("invalid feature collection: %w", err)
	}

	features := make([]schema.TripFeature, 0, len(raw.Features))
	for i, f := range raw.Features {
		tf := schema.TripFeature{
			ID:         featureID(f.ID),
			Geometry:   f.Geometry,
			Properties: make(map[string]any, len(f.Properties)),
		}
		for k, v := range f.Properties {
			if k == schema.DensityProperty {
				continue
			}
			tf.Properties[k] = v
		}
		tf.Density, tf.HasDensity = core.DensityValue(f.Properties[schema.DensityProperty])
		if strict && !tf.HasDensity {
			return schema.TripFeatureCollection{}, fmt.Errorf("feature %d has no numeric %s property", i, schema.DensityProperty)
		}
		features = append(features, tf)
	}
	return schema.TripFeatureCollection{Features: features}, nil
}

// featureID normalizes a GeoJSON feature id into a string.
func featureID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
