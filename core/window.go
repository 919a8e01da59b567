package core

import (
	"time"

	"github.com/pynyc/tripmap/schema"
)

// NormalizeYear moves t into the reference year, keeping month, day and clock time.
// A reference year of 0 leaves t unchanged.
func NormalizeYear(t time.Time, referenceYear int) time.Time {
	if referenceYear == 0 {
		return t
	}
	return time.Date(referenceYear, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// DefaultWindow derives the window used when none was requested explicitly.
// The instant is now moved into the reference year and truncated to seconds.
// Range windows cover the month leading up to that instant.
func DefaultWindow(now time.Time, referenceYear int, kind schema.WindowKind) schema.TimeWindow {
	at := NormalizeYear(now, referenceYear).Truncate(time.Second)
	switch kind {
	case schema.RangeWindow:
		return schema.NewRangeWindow(at.AddDate(0, -1, 0), at)
	case schema.HourRangeWindow:
		return schema.NewHourRangeWindow(at.AddDate(0, -1, 0), at, 0, 23)
	default:
		return schema.NewInstantWindow(at, schema.DefaultHourSpan)
	}
}
