package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"comboforge/internal/combo"
	"comboforge/internal/metrics"
	"comboforge/pkg/logging/logging"
)

// Chain tries adapters in priority order. Unconfigured adapters are skipped
// entirely; any transport failure advances to the next one; the first 2xx
// wins. There are no retries within an adapter: the fallback chain is the
// whole recovery story.
type Chain struct {
	adapters []Adapter
}

// NewChain builds a chain in the given priority order.
func NewChain(adapters ...Adapter) *Chain {
	return &Chain{adapters: adapters}
}

// Configured reports whether at least one adapter has credentials.
func (c *Chain) Configured() bool {
	for _, a := range c.adapters {
		if a.Configured() {
			return true
		}
	}
	return false
}

// Generate returns the raw text from the first adapter that succeeds,
// along with the adapter that produced it. Downstream assembly branches on
// the winning adapter's family.
func (c *Chain) Generate(ctx context.Context, req combo.GenerationRequest) (string, Adapter, error) {
	logger := logging.L(ctx)

	anyConfigured := false
	var lastErr error

	for _, a := range c.adapters {
		if !a.Configured() {
			logger.Debug("provider_skipped",
				zap.String("provider", a.Name()),
				zap.String("reason", "not_configured"),
			)
			continue
		}
		anyConfigured = true

		prompt := BuildPrompt(a.Family(), req)

		start := time.Now()
		raw, err := a.Generate(ctx, prompt)
		duration := time.Since(start)

		if err != nil {
			metrics.ProviderAttemptsTotal.WithLabelValues(a.Name(), "error").Inc()
			logger.Warn("provider_attempt_failed",
				zap.String("provider", a.Name()),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			lastErr = err

			// Never burn the remaining tiers on a dead request.
			if ctx.Err() != nil {
				return "", nil, ctx.Err()
			}
			continue
		}

		metrics.ProviderAttemptsTotal.WithLabelValues(a.Name(), "ok").Inc()
		logger.Info("provider_attempt_succeeded",
			zap.String("provider", a.Name()),
			zap.Duration("duration", duration),
			zap.Int("raw_bytes", len(raw)),
		)
		return raw, a, nil
	}

	if !anyConfigured {
		return "", nil, ErrNoProvider
	}
	return "", nil, fmt.Errorf("%w: last error: %v", ErrAllProvidersFailed, lastErr)
}
