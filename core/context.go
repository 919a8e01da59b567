package core

import (
	"context"
	"time"
)

// Context keys for composition options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	clockKey          contextKey = "clock"
)

// WithSuppressHeader marks the context so that progress headers are not printed.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithClock overrides the current time used to derive default time windows.
func WithClock(ctx context.Context, now func() time.Time) context.Context {
	return context.WithValue(ctx, clockKey, now)
}

// nowFrom returns the current time according to the context clock
func nowFrom(ctx context.Context) time.Time {
	if now, ok := ctx.Value(clockKey).(func() time.Time); ok && now != nil {
		return now()
	}
	return time.Now()
}
