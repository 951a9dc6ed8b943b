package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter on Redis: INCR the client's key,
// set the window expiry on the first increment, reject once the
// post-increment count exceeds the limit.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

func (l *RedisLimiter) key(clientID string) string {
	if l.prefix == "" {
		return "ratelimit:" + clientID
	}
	return l.prefix + ":ratelimit:" + clientID
}

func (l *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, fmt.Errorf("context error: %w", err)
	}

	key := l.key(clientID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		// Fail open: never block all traffic on a store outage.
		return true, fmt.Errorf("redis incr failed: %w", err)
	}

	allowed := count <= Limit

	if count == 1 {
		if err := l.client.Expire(ctx, key, Window).Err(); err != nil {
			return true, fmt.Errorf("redis expire failed: %w", err)
		}
		return allowed, nil
	}

	// A failed EXPIRE on the first increment leaves the counter with no
	// TTL, which would block the client long after the window should have
	// elapsed. Detect that state and re-arm the window.
	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("redis ttl failed: %w", err)
	}
	if ttl < 0 {
		if err := l.client.Expire(ctx, key, Window).Err(); err != nil {
			return true, fmt.Errorf("redis expire failed: %w", err)
		}
	}

	return allowed, nil
}
