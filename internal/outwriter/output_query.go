package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pynyc/tripmap/core"
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/schema"
)

// QueryResult is the machine-readable view of a backend query.
type QueryResult struct {
	Query     string            `json:"query"`
	Kind      schema.WindowKind `json:"kind"`
	Instant   string            `json:"instant,omitempty"`
	Start     string            `json:"start,omitempty"`
	End       string            `json:"end,omitempty"`
	HourSpan  int               `json:"hour_span,omitempty"`
	StartHour *int              `json:"start_hour,omitempty"`
	EndHour   *int              `json:"end_hour,omitempty"`
}

// NewQueryResult describes a query string together with the window it encodes.
func NewQueryResult(query string, w schema.TimeWindow) QueryResult {
	res := QueryResult{Query: query, Kind: w.Kind}
	switch w.Kind {
	case schema.RangeWindow:
		res.Start, res.End = core.FormatQueryTime(w.Start), core.FormatQueryTime(w.End)
		res.HourSpan = w.HourSpan
	case schema.HourRangeWindow:
		res.Start, res.End = core.FormatQueryTime(w.Start), core.FormatQueryTime(w.End)
		sh, eh := w.StartHour, w.EndHour
		res.StartHour, res.EndHour = &sh, &eh
	default:
		res.Instant = core.FormatQueryTime(w.Instant)
		res.HourSpan = w.HourSpan
	}
	return res
}

// WriteQueryResult outputs a query, dispatching based on the output format configured.
// Formats without a query representation fall back to the plain query line.
func WriteQueryResult(query string, w schema.TimeWindow, cfg *contract.Config) error {
	res := NewQueryResult(query, w)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, res)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(out io.Writer) error {
			return writeQueryCSV(out, res)
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(out io.Writer) error {
			return writeQueryTable(out, res)
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(out io.Writer) error {
			_, err := fmt.Fprintln(out, res.Query)
			return err
		}, "Wrote query")
	}
}

func queryRows(res QueryResult) [][]string {
	rows := [][]string{{"kind", string(res.Kind)}}
	if res.Instant != "" {
		rows = append(rows, []string{"instant", res.Instant})
	}
	if res.Start != "" {
		rows = append(rows, []string{"start", res.Start}, []string{"end", res.End})
	}
	if res.HourSpan != 0 {
		rows = append(rows, []string{"hour_span", strconv.Itoa(res.HourSpan)})
	}
	if res.StartHour != nil {
		rows = append(rows, []string{"start_hour", strconv.Itoa(*res.StartHour)}, []string{"end_hour", strconv.Itoa(*res.EndHour)})
	}
	return rows
}

func writeQueryTable(w io.Writer, res QueryResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	if err := table.Bulk(queryRows(res)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Query: %s\n", res.Query)
	return err
}

func writeQueryCSV(w io.Writer, res QueryResult) error {
	return writeCSVWithHeader(w, []string{"field", "value"}, func(cw *csv.Writer) error {
		rows := append([][]string{{"query", res.Query}}, queryRows(res)...)
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
