package ratelimit

import (
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Backend string
	Prefix  string
}

func NewLimiter(cfg Config, redisClient *redis.Client) Limiter {
	switch cfg.Backend {
	case "redis":
		return NewRedisLimiter(redisClient, cfg.Prefix)
	default:
		return NewMemoryLimiter()
	}
}
