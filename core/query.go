package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pynyc/tripmap/schema"
)

// FormatQueryTime encodes a timestamp the way the backend expects it:
// second precision, 24-hour clock, zero padded, no zone suffix.
func FormatQueryTime(t time.Time) string {
	return t.Format(schema.QueryTimeLayout)
}

// BuildQuery converts a time window into the backend query string.
// The window is not validated: a start after its end is passed through for the backend to reject.
func BuildQuery(w schema.TimeWindow) string {
	var b strings.Builder
	param := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}

	switch w.Kind {
	case schema.RangeWindow:
		param(schema.ParamStartDate, FormatQueryTime(w.Start))
		param(schema.ParamEndDate, FormatQueryTime(w.End))
		param(schema.ParamHourSpan, strconv.Itoa(hourSpanOf(w)))
	case schema.HourRangeWindow:
		param(schema.ParamStartDate, FormatQueryTime(w.Start))
		param(schema.ParamEndDate, FormatQueryTime(w.End))
		param(schema.ParamStartTime, strconv.Itoa(w.StartHour))
		param(schema.ParamEndTime, strconv.Itoa(w.EndHour))
	default:
		param(schema.ParamDate, FormatQueryTime(w.Instant))
		param(schema.ParamHourSpan, strconv.Itoa(hourSpanOf(w)))
	}
	return b.String()
}

func hourSpanOf(w schema.TimeWindow) int {
	if w.HourSpan == 0 {
		return schema.DefaultHourSpan
	}
	return w.HourSpan
}

// ParseQuery decodes a query string produced by BuildQuery back into a time window.
// Timestamps are interpreted in UTC.
func ParseQuery(query string) (schema.TimeWindow, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return schema.TimeWindow{}, fmt.Errorf("invalid query %q: %w", query, err)
	}

	parseTime := func(key string) (time.Time, error) {
		raw := values.Get(key)
		if raw == "" {
			return time.Time{}, fmt.Errorf("missing %s", key)
		}
		t, err := ParseQueryTime(raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		return t, nil
	}
	parseInt := func(key string, fallback int) (int, error) {
		raw := values.Get(key)
		if raw == "" {
			return fallback, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return n, nil
	}

	switch {
	case values.Has(schema.ParamDate):
		at, err := parseTime(schema.ParamDate)
		if err != nil {
			return schema.TimeWindow{}, err
		}
		span, err := parseInt(schema.ParamHourSpan, schema.DefaultHourSpan)
		if err != nil {
			return schema.TimeWindow{}, err
		}
		return schema.NewInstantWindow(at, span), nil

	case values.Has(schema.ParamStartDate):
		start, err := parseTime(schema.ParamStartDate)
		if err != nil {
			return schema.TimeWindow{}, err
		}
		end, err := parseTime(schema.ParamEndDate)
		if err != nil {
			return schema.TimeWindow{}, err
		}
		if values.Has(schema.ParamStartTime) || values.Has(schema.ParamEndTime) {
			sh, err := parseInt(schema.ParamStartTime, 0)
			if err != nil {
				return schema.TimeWindow{}, err
			}
			eh, err := parseInt(schema.ParamEndTime, 23)
			if err != nil {
				return schema.TimeWindow{}, err
			}
			return schema.NewHourRangeWindow(start, end, sh, eh), nil
		}
		span, err := parseInt(schema.ParamHourSpan, schema.DefaultHourSpan)
		if err != nil {
			return schema.TimeWindow{}, err
		}
		return schema.NewRangeWindow(start, end).WithHourSpan(span), nil
	}
	return schema.TimeWindow{}, fmt.Errorf("query %q has neither %s nor %s", query, schema.ParamDate, schema.ParamStartDate)
}

// ParseQueryTime parses a timestamp in the backend query encoding (UTC).
func ParseQueryTime(s string) (time.Time, error) {
	return time.ParseInLocation(schema.QueryTimeLayout, strings.TrimSpace(s), time.UTC)
}
