package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterBoundary(t *testing.T) {
	l := NewMemoryLimiter()

	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	ctx := context.Background()

	for i := 1; i <= Limit; i++ {
		allowed, err := l.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request #%d should be allowed", i)
		}
	}

	allowed, err := l.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow #%d: %v", Limit+1, err)
	}
	if allowed {
		t.Fatalf("request #%d should be rejected", Limit+1)
	}

	// A different client is unaffected.
	allowed, _ = l.Allow(ctx, "10.0.0.2")
	if !allowed {
		t.Fatalf("other client should not share the window")
	}

	// After the window elapses, the original client is admitted again.
	now = now.Add(Window + time.Second)
	allowed, _ = l.Allow(ctx, "10.0.0.1")
	if !allowed {
		t.Fatalf("request after window expiry should be allowed")
	}
}
