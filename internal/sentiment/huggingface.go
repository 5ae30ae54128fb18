package sentiment

import (
	"context"
	"fmt"

	"github.com/spacesedan/sentiscope/internal/models"
)

// BatchAnalyzer is the slice of clients.HuggingFaceClient the scorer needs.
type BatchAnalyzer interface {
	GetBatchedSentimentAnalysis(ctx context.Context, input models.SentimentAnalysisBatchRequest) (models.SentimentAnalysisBatchResponse, error)
	AnalyzerHealthCheck(ctx context.Context) bool
}

// HuggingFaceScorer scores text with the remote transformer service, one
// single-item batch per call.
type HuggingFaceScorer struct {
	client BatchAnalyzer
}

func NewHuggingFaceScorer(client BatchAnalyzer) *HuggingFaceScorer {
	return &HuggingFaceScorer{client: client}
}

func (h *HuggingFaceScorer) Score(ctx context.Context, text string) (float64, error) {
	const contentID = "0"
	results, err := h.client.GetBatchedSentimentAnalysis(ctx, models.SentimentAnalysisBatchRequest{
		{ContentID: contentID, Text: text},
	})
	if err != nil {
		return 0, fmt.Errorf("[HuggingFaceScorer] %w: %w", ErrScoring, err)
	}
	if len(results) != 1 {
		return 0, fmt.Errorf("[HuggingFaceScorer] %w: expected 1 result, got %d", ErrScoring, len(results))
	}
	return results[0].SentimentScore, nil
}

func (h *HuggingFaceScorer) Healthy(ctx context.Context) bool {
	return h.client.AnalyzerHealthCheck(ctx)
}
