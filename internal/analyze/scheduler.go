package analyze

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out sequential model calls so the pipeline respects the
// upstream provider's rate limits. It is the named replacement for an
// inline sleep: burst 1, one event per interval, context-aware.
//
// In batch mode a single Pacer is shared across workers, so the
// aggregate request rate to the provider never exceeds the ceiling of
// the sequential path.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer emitting one call per interval. A zero or
// negative interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow reports whether a call is allowed right now without waiting
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}
