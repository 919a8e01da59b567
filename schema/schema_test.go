package schema

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestBucketColorsAreDistinct(t *testing.T) {
	seen := make(map[string]Bucket)
	for _, b := range AllBuckets {
		c := b.Color()
		prev, dup := seen[c]
		assert.False(t, dup, "bucket %v shares color %s with %v", b, c, prev)
		seen[c] = b
	}
	assert.Len(t, seen, 5)
}

func TestBucketFallbacks(t *testing.T) {
	assert.Equal(t, BucketMinimal.Color(), Bucket(42).Color())
	assert.Equal(t, "minimal", Bucket(-1).Label())
	assert.Equal(t, "very-high", BucketVeryHigh.String())
}

func TestWindowConstructors(t *testing.T) {
	at := time.Date(2023, 1, 12, 15, 30, 45, 0, time.UTC)

	t.Run("instant defaults hour span", func(t *testing.T) {
		w := NewInstantWindow(at, 0)
		assert.Equal(t, InstantWindow, w.Kind)
		assert.Equal(t, 1, w.HourSpan)
		assert.Equal(t, at, w.Instant)
	})

	t.Run("instant keeps explicit span", func(t *testing.T) {
		assert.Equal(t, 3, NewInstantWindow(at, 3).HourSpan)
	})

	t.Run("range uses default span", func(t *testing.T) {
		w := NewRangeWindow(at.AddDate(0, -1, 0), at)
		assert.Equal(t, RangeWindow, w.Kind)
		assert.Equal(t, 1, w.HourSpan)
		assert.Equal(t, 4, w.WithHourSpan(4).HourSpan)
		assert.Equal(t, 1, w.HourSpan, "WithHourSpan must not mutate the receiver")
	})

	t.Run("hour range", func(t *testing.T) {
		w := NewHourRangeWindow(at, at, 8, 17)
		assert.Equal(t, HourRangeWindow, w.Kind)
		assert.Equal(t, 8, w.StartHour)
		assert.Equal(t, 17, w.EndHour)
	})
}

func TestFeatureAnchor(t *testing.T) {
	square := orb.Polygon{orb.Ring{{0, 0}, {2, 0}, {2, 4}, {0, 4}, {0, 0}}}
	f := TripFeature{Geometry: square}
	assert.Equal(t, orb.Point{1, 2}, f.Anchor())
	assert.Equal(t, orb.Point{}, TripFeature{}.Anchor())
}

func TestStyleIsZero(t *testing.T) {
	assert.True(t, Style{}.IsZero())
	assert.False(t, Style{Weight: 2}.IsZero())
}

func TestBucketCounts(t *testing.T) {
	counts := BucketCounts([]LayerResult{
		{Bucket: "high"}, {Bucket: "high"}, {Bucket: "minimal"},
	})
	assert.Equal(t, 2, counts["high"])
	assert.Equal(t, 1, counts["minimal"])
	assert.Equal(t, 0, counts["very-high"])
	assert.Len(t, counts, 5)
}
