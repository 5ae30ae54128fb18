package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// VaderScorer uses the VADER compound score, which is already normalised to
// [-1, 1]. The analyzer only reads its lexicons so one instance can be shared.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Score(_ context.Context, text string) (float64, error) {
	return v.analyzer.PolarityScores(text).Compound, nil
}
