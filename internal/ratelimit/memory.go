package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowCounter struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is an in-process fixed-window limiter for dev and tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]windowCounter

	limit  int
	window time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string]windowCounter),
		limit:   Limit,
		window:  Window,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[clientID]
	if !ok || now.Sub(c.windowStart) >= l.window {
		c = windowCounter{windowStart: now}
	}
	c.count++
	l.clients[clientID] = c

	return c.count <= l.limit, nil
}
