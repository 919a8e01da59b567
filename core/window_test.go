package core

import (
	"testing"
	"time"

	"github.com/pynyc/tripmap/schema"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeYear(t *testing.T) {
	ts := time.Date(2026, time.October, 14, 9, 15, 2, 500, time.UTC)
	got := NormalizeYear(ts, 2023)
	assert.Equal(t, time.Date(2023, time.October, 14, 9, 15, 2, 0, time.UTC), got)

	assert.Equal(t, ts, NormalizeYear(ts, 0))
}

func TestDefaultWindow(t *testing.T) {
	now := time.Date(2025, time.January, 12, 15, 30, 45, 123456789, time.UTC)

	w := DefaultWindow(now, 2023, schema.InstantWindow)
	assert.Equal(t, "date=2023-01-12T15:30:45&hour_span=1", BuildQuery(w))

	w = DefaultWindow(now, 2023, schema.RangeWindow)
	assert.Equal(t, time.Date(2022, time.December, 12, 15, 30, 45, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2023, time.January, 12, 15, 30, 45, 0, time.UTC), w.End)
	assert.Equal(t, 1, w.HourSpan)

	w = DefaultWindow(now, 0, schema.HourRangeWindow)
	assert.Equal(t, 2025, w.End.Year())
	assert.Equal(t, 0, w.StartHour)
	assert.Equal(t, 23, w.EndHour)
}
