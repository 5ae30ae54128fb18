package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

// ScoreStore persists text scores between requests. clients.ValkeyClient
// satisfies it.
type ScoreStore interface {
	GetScore(ctx context.Context, key string) (float64, bool, error)
	SetScore(ctx context.Context, key string, score float64, ttl time.Duration) error
}

// CachedScorer memoises a deterministic scorer by text hash. Store failures
// fall through to the wrapped scorer.
type CachedScorer struct {
	next    Scorer
	store   ScoreStore
	backend string
	ttl     time.Duration
}

func NewCachedScorer(next Scorer, store ScoreStore, backend string, ttl time.Duration) *CachedScorer {
	return &CachedScorer{next: next, store: store, backend: backend, ttl: ttl}
}

func (c *CachedScorer) Score(ctx context.Context, text string) (float64, error) {
	key := c.key(text)

	score, ok, err := c.store.GetScore(ctx, key)
	if err != nil {
		slog.Warn("[CachedScorer] Score lookup failed, scoring directly",
			slog.String("error", err.Error()))
	} else if ok {
		return score, nil
	}

	score, err = c.next.Score(ctx, text)
	if err != nil {
		return 0, err
	}

	if err := c.store.SetScore(ctx, key, score, c.ttl); err != nil {
		slog.Warn("[CachedScorer] Failed to store score",
			slog.String("error", err.Error()))
	}
	return score, nil
}

// Healthy delegates to the wrapped scorer when it can report health.
func (c *CachedScorer) Healthy(ctx context.Context) bool {
	if hc, ok := c.next.(HealthChecker); ok {
		return hc.Healthy(ctx)
	}
	return true
}

func (c *CachedScorer) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.backend + ":" + hex.EncodeToString(sum[:])
}
