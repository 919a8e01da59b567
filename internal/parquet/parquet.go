// Package parquet exports rendered trip density layers to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/pynyc/tripmap/schema"
)

// LayerRow is one rendered overlay layer of a composed map.
type LayerRow struct {
	// RunID identifies the composition the layer belongs to
	RunID string `parquet:"run_id,snappy"`

	// Query is the backend query string the overlay was fetched with (empty for boundary maps)
	Query string `parquet:"query,snappy"`

	// LayerIndex is the position of the feature in the collection
	LayerIndex int32 `parquet:"layer_index,snappy"`

	// FeatureID is the GeoJSON or zone id (nullable)
	FeatureID *string `parquet:"feature_id,optional,snappy"`

	// Density is the trip count of the region
	Density float64 `parquet:"density,snappy"`

	// HasDensity is false when the backend did not provide a usable density
	HasDensity bool `parquet:"has_density,snappy"`

	// Bucket is the density bucket label
	Bucket string `parquet:"bucket,snappy"`

	// FillColor is the fill color of the rendered layer (nullable for unstyled layers)
	FillColor *string `parquet:"fill_color,optional,snappy"`

	// Highlighted marks the selected layer
	Highlighted bool `parquet:"highlighted,snappy"`

	// ExportedAt is when the rows were written (stored as TIMESTAMP with nanosecond precision)
	ExportedAt time.Time `parquet:"exported_at,snappy"`
}

// LayerRows flattens a surface result into one row per layer.
func LayerRows(res schema.SurfaceResult, exportedAt time.Time) []LayerRow {
	rows := make([]LayerRow, 0, len(res.Layers))
	for _, l := range res.Layers {
		row := LayerRow{
			RunID:       res.RunID,
			Query:       res.Query,
			LayerIndex:  int32(l.Index),
			Density:     l.Density,
			HasDensity:  l.HasDensity,
			Bucket:      l.Bucket,
			Highlighted: l.Highlighted,
			ExportedAt:  exportedAt,
		}
		if l.ID != "" {
			id := l.ID
			row.FeatureID = &id
		}
		if l.Style.FillColor != "" {
			fill := l.Style.FillColor
			row.FillColor = &fill
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteLayersParquet writes a slice of LayerRow structs to a Parquet file.
func WriteLayersParquet(data []LayerRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the LayerRow struct tags
	writer := parquet.NewGenericWriter[LayerRow](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
