package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"comboforge/internal/cache"
	"comboforge/internal/combo"
	"comboforge/internal/metrics"
	"comboforge/internal/provider"
	"comboforge/internal/ratelimit"
	"comboforge/pkg/logging/logging"
)

// ErrRateLimited signals that the client exceeded its request window.
var ErrRateLimited = errors.New("rate limited")

// TextSource produces raw model text for a request. Satisfied by
// *provider.Chain; tests substitute a stub.
type TextSource interface {
	Generate(ctx context.Context, req combo.GenerationRequest) (string, provider.Adapter, error)
}

// Generator is the whole request pipeline: rate limit, cache lookup,
// provider chain, parse, validate, assemble, cache store. Stateless per
// request; the cache and limiter are the only shared stores, reached
// through atomic single-key operations.
type Generator struct {
	source   TextSource
	store    cache.Store
	limiter  ratelimit.Limiter
	cacheTTL time.Duration
}

func NewGenerator(source TextSource, store cache.Store, limiter ratelimit.Limiter, cacheTTL time.Duration) *Generator {
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultTTL
	}
	return &Generator{
		source:   source,
		store:    store,
		limiter:  limiter,
		cacheTTL: cacheTTL,
	}
}

// Generate runs one request through the pipeline. The second return value
// reports whether the result came from cache.
func (g *Generator) Generate(ctx context.Context, req combo.GenerationRequest, clientID string) (combo.GenerationResult, bool, error) {
	logger := logging.L(ctx)
	req = req.Normalize()

	allowed, err := g.limiter.Allow(ctx, clientID)
	if err != nil {
		// Fail open: limiter store trouble must not block traffic.
		logger.Warn("rate_limiter_degraded", zap.Error(err))
	}
	if !allowed {
		metrics.RateLimitedTotal.Inc()
		logger.Info("request_rate_limited", zap.String("client_id", clientID))
		return combo.GenerationResult{}, false, ErrRateLimited
	}

	key := cache.Fingerprint(req).String()

	if cached, hit, err := g.store.Get(ctx, key); err != nil {
		// Best effort; treated as a miss.
		logger.Warn("result_cache_degraded", zap.Error(err))
	} else if hit {
		var result combo.GenerationResult
		if err := json.Unmarshal(cached, &result); err != nil {
			logger.Warn("result_cache_unmarshal_error", zap.Error(err))
		} else {
			return result, true, nil
		}
	}

	raw, src, err := g.source.Generate(ctx, req)
	if err != nil {
		return combo.GenerationResult{}, false, err
	}

	cands, err := Parse(raw)
	if err != nil {
		logger.Warn("model_output_parse_failed",
			zap.String("provider", src.Name()),
			zap.Error(err),
		)
		return combo.GenerationResult{}, false, err
	}

	accepted := Validate(cands, req.Mode)
	if len(accepted) == 0 {
		// Every candidate failed post-validation. Surfaced as an explicit
		// empty success, not retried against another provider.
		metrics.EmptyResultsTotal.Inc()
		logger.Warn("all_candidates_rejected",
			zap.String("provider", src.Name()),
			zap.Int("raw_candidates", len(cands)),
		)
	}

	result := Assemble(accepted, req.Mode, combo.Meta{
		Mode: req.Mode,
		Tone: req.Tone,
		Seed: req.Seed,
	})

	logger.Info("generation_completed",
		zap.String("provider", src.Name()),
		zap.String("provider_family", string(src.Family())),
		zap.Int("raw_candidates", len(cands)),
		zap.Int("accepted", len(accepted)),
		zap.Int("emoji_bucket", len(result.Emoji)),
		zap.Int("ascii_bucket", len(result.Ascii)),
	)

	// Empty successes are not cached: pinning a degenerate result to a
	// fingerprint for the full TTL would starve that request shape.
	if len(accepted) > 0 {
		if body, err := json.Marshal(result); err != nil {
			logger.Warn("result_marshal_error", zap.Error(err))
		} else if err := g.store.Set(ctx, key, body, g.cacheTTL); err != nil {
			logger.Warn("result_cache_set_error", zap.Error(err))
		}
	}

	return result, false, nil
}
