package sentiment

import (
	"fmt"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/clients"
)

// NewFromConfig builds the scorer selected by SENTIMENT_BACKEND.
func NewFromConfig(cfg *config.Config) (Scorer, error) {
	switch cfg.Sentiment.Backend {
	case config.SentimentBackendVader, "":
		return NewVaderScorer(), nil
	case config.SentimentBackendHuggingFace:
		return NewHuggingFaceScorer(clients.NewHuggingFaceClient(cfg.HuggingFace)), nil
	case config.SentimentBackendOpenAI:
		return NewOpenAIScorer(clients.NewOpenAIClient(cfg.OpenAI)), nil
	default:
		return nil, fmt.Errorf("[Sentiment] unknown backend %q", cfg.Sentiment.Backend)
	}
}
