package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/internal/parquet"
	"github.com/pynyc/tripmap/schema"
)

// zoneNameProperty is the boundary property holding a human-readable zone name.
const zoneNameProperty = "zone"

// WriteSurfaceResult outputs a composed map, dispatching based on the output format configured.
func WriteSurfaceResult(res schema.SurfaceResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSurfaceCSV(w, res)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.GeoJSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSurfaceGeoJSON(w, res)
		}, "Wrote GeoJSON"); err != nil {
			return fmt.Errorf("error writing GeoJSON output: %w", err)
		}
	case schema.HTMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSurfaceHTML(w, res)
		}, "Wrote map"); err != nil {
			return fmt.Errorf("error writing HTML output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeSurfaceParquet(res, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSurfaceTable(w, res, cfg)
		}, "Wrote table")
	}
	return nil
}

// writeSurfaceParquet writes one row per layer to outputFile.
func writeSurfaceParquet(res schema.SurfaceResult, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("parquet output requires an output file")
	}
	rows := parquet.LayerRows(res, time.Now().UTC())
	if err := parquet.WriteLayersParquet(rows, outputFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d layers as Parquet to %s\n", len(rows), outputFile)
	return nil
}

// writeSurfaceTable generates and writes the human-readable table.
func writeSurfaceTable(w io.Writer, res schema.SurfaceResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Layer", "Zone", "Density", "Bucket", "Fill", "Selected"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, l := range res.Layers {
		row := []string{
			strconv.Itoa(l.Index),
			contract.TruncateText(layerName(l), nameWidth),
			densityCell(l),
			"-",
			"-",
			"",
		}
		if !l.Style.IsZero() {
			row[3] = bucketCell(core.Classify(l.Density), cfg.UseColors)
			row[4] = l.Style.FillColor
		}
		if l.Highlighted {
			row[5] = "*"
			if cfg.UseColors {
				row[5] = contract.HighlightMark.Sprint("*")
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeSurfaceSummary(w, res, cfg)
}

// writeSurfaceSummary prints the bucket tally, the open popup and any degraded state notices.
func writeSurfaceSummary(w io.Writer, res schema.SurfaceResult, cfg *contract.Config) error {
	counts := schema.BucketCounts(res.Layers)
	parts := make([]string, 0, len(schema.AllBuckets))
	for i := len(schema.AllBuckets) - 1; i >= 0; i-- {
		label := schema.AllBuckets[i].Label()
		parts = append(parts, fmt.Sprintf("%s: %d", label, counts[label]))
	}
	if _, err := fmt.Fprintf(w, "Showing %d zones (%s)\n", len(res.Layers), strings.Join(parts, ", ")); err != nil {
		return err
	}
	if res.Query != "" {
		if _, err := fmt.Fprintf(w, "Query: %s\n", res.Query); err != nil {
			return err
		}
	}
	if res.Popup != nil {
		if _, err := fmt.Fprintf(w, "Popup on layer %d: %s\n", res.Popup.LayerIndex, res.Popup.Content); err != nil {
			return err
		}
	}
	for _, n := range res.Notices {
		msg := "⚠️  " + n
		if cfg.UseColors {
			msg = contract.NoticeColor.Sprint(msg)
		}
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}

// writeSurfaceCSV writes one row per layer in CSV format.
func writeSurfaceCSV(w io.Writer, res schema.SurfaceResult) error {
	header := []string{"index", "id", "zone", "density", "has_density", "bucket", "fill_color", "highlighted", "order"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, l := range res.Layers {
			row := []string{
				strconv.Itoa(l.Index),
				l.ID,
				layerName(l),
				formatDensity(l.Density),
				strconv.FormatBool(l.HasDensity),
				l.Bucket,
				l.Style.FillColor,
				strconv.FormatBool(l.Highlighted),
				strconv.Itoa(l.Order),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// layerName returns the zone name of a layer, falling back to its id.
func layerName(l schema.LayerResult) string {
	if name, ok := l.Properties[zoneNameProperty].(string); ok && name != "" {
		return name
	}
	return l.ID
}

func densityCell(l schema.LayerResult) string {
	if !l.HasDensity {
		return "-"
	}
	return formatDensity(l.Density)
}

func bucketCell(b schema.Bucket, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(b)
	}
	return contract.GetPlainLabel(b)
}
