package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a generated result stays cached. Eviction is
// time-based only; there is no explicit invalidation path.
const DefaultTTL = 7 * 24 * time.Hour

// Store is the result cache used by the pipeline.
// Implemented by the memory store (dev) and the Redis store (prod).
// The cache is best-effort: callers treat any error as a miss and never
// fail a request on a Set error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
