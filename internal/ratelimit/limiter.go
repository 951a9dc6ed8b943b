package ratelimit

import (
	"context"
	"time"
)

const (
	// Limit is the maximum number of requests admitted per client per window.
	Limit = 10
	// Window is the fixed counting window. This is a fixed-window counter,
	// not a sliding window: bursts straddling a window boundary can admit up
	// to ~2x the nominal rate.
	Window = 60 * time.Second
)

// Limiter gates requests per client before any model call.
// Implementations fail open: on a store error they return allowed=true
// together with the error, so an infrastructure outage never blocks all
// traffic. Callers log the error and proceed.
type Limiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}
