package core

import (
	"testing"
	"time"

	"github.com/pynyc/tripmap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	instant := time.Date(2023, time.January, 12, 15, 30, 45, 0, time.UTC)
	start := time.Date(2022, time.December, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.January, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		window   schema.TimeWindow
		expected string
	}{
		{
			name:     "instant",
			window:   schema.NewInstantWindow(instant, 1),
			expected: "date=2023-01-12T15:30:45&hour_span=1",
		},
		{
			name:     "instant zero span uses default",
			window:   schema.TimeWindow{Kind: schema.InstantWindow, Instant: instant},
			expected: "date=2023-01-12T15:30:45&hour_span=1",
		},
		{
			name:     "instant wider span",
			window:   schema.NewInstantWindow(instant, 6),
			expected: "date=2023-01-12T15:30:45&hour_span=6",
		},
		{
			name:     "range",
			window:   schema.NewRangeWindow(start, end),
			expected: "startDate=2022-12-12T00:00:00&endDate=2023-01-12T00:00:00&hour_span=1",
		},
		{
			name:     "hour range",
			window:   schema.NewHourRangeWindow(start, end, 7, 9),
			expected: "startDate=2022-12-12T00:00:00&endDate=2023-01-12T00:00:00&startTime=7&endTime=9",
		},
		{
			name:     "reversed range passes through",
			window:   schema.NewRangeWindow(end, start),
			expected: "startDate=2023-01-12T00:00:00&endDate=2022-12-12T00:00:00&hour_span=1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildQuery(tt.window))
		})
	}
}

func TestFormatQueryTimePadding(t *testing.T) {
	ts := time.Date(2023, time.March, 4, 5, 6, 7, 999, time.UTC)
	assert.Equal(t, "2023-03-04T05:06:07", FormatQueryTime(ts))
}

func TestParseQueryRoundTrip(t *testing.T) {
	instant := time.Date(2023, time.January, 12, 15, 30, 45, 0, time.UTC)
	start := time.Date(2022, time.December, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.January, 12, 0, 0, 0, 0, time.UTC)

	windows := []schema.TimeWindow{
		schema.NewInstantWindow(instant, 3),
		schema.NewRangeWindow(start, end),
		schema.NewHourRangeWindow(start, end, 0, 23),
	}
	for _, w := range windows {
		t.Run(string(w.Kind), func(t *testing.T) {
			parsed, err := ParseQuery(BuildQuery(w))
			require.NoError(t, err)
			assert.Equal(t, w, parsed)
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	tests := []string{
		"",
		"hour_span=1",
		"date=yesterday&hour_span=1",
		"date=2023-01-12T15:30:45&hour_span=x",
		"startDate=2022-12-12T00:00:00",
		"%zz",
	}
	for _, q := range tests {
		_, err := ParseQuery(q)
		assert.Error(t, err, "query %q", q)
	}
}

func TestParseQueryLeadingQuestionMark(t *testing.T) {
	w, err := ParseQuery("?date=2023-01-12T15:30:45")
	require.NoError(t, err)
	assert.Equal(t, schema.InstantWindow, w.Kind)
	assert.Equal(t, 1, w.HourSpan)
}
