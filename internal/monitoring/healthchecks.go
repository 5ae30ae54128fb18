package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15 * time.Second

// Checker is satisfied by sentiment scorers that depend on a remote service.
type Checker interface {
	Healthy(ctx context.Context) bool
}

// MonitorScorerHealth checks the scorer once immediately and then every
// interval until ctx is done, storing the result in healthy.
func MonitorScorerHealth(ctx context.Context, checker Checker, interval time.Duration, healthy *atomic.Bool) {
	if interval <= 0 {
		interval = HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		isHealthy := checker.Healthy(ctx)
		healthy.Store(isHealthy)
		if isHealthy {
			ScorerHealthy.Set(1)
		} else {
			ScorerHealthy.Set(0)
			slog.Warn("[HealthCheck] Sentiment scorer is unhealthy")
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
