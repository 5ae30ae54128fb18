// Package sentiment turns post text into a polarity score in [-1, 1].
package sentiment

import (
	"context"
	"errors"
)

var ErrScoring = errors.New("sentiment: scoring failed")

// Scorer returns the polarity of text. Positive is favourable, negative is
// unfavourable and zero is neutral.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

type ScorerFunc func(ctx context.Context, text string) (float64, error)

func (f ScorerFunc) Score(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// HealthChecker is implemented by scorers backed by a remote service.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}
