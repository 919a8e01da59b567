package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.WithinDuration(t, time.Now(), nowFrom(ctx), time.Minute)
}

func TestContextConcurrentAccess(t *testing.T) {
	fixed := time.Date(2023, time.January, 12, 15, 30, 45, 0, time.UTC)
	ctx := WithClock(WithSuppressHeader(context.Background()), func() time.Time { return fixed })

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.True(t, shouldSuppressHeader(ctx), "Goroutine %d: header should be suppressed", id)
			assert.Equal(t, fixed, nowFrom(ctx), "Goroutine %d: clock should be fixed", id)
		}(i)
	}
	wg.Wait()
}

func TestContextWrongValueType(t *testing.T) {
	ctx := context.WithValue(context.Background(), suppressHeaderKey, "yes")
	assert.False(t, shouldSuppressHeader(ctx))
}
