package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// PolarityCompleter is the slice of clients.OpenAIClient the scorer needs.
type PolarityCompleter interface {
	CompletePolarity(ctx context.Context, text string) (string, error)
}

// OpenAIScorer asks a chat model for a polarity. Answers outside [-1, 1] are
// clamped since the model is not bound to the range.
type OpenAIScorer struct {
	client PolarityCompleter
}

func NewOpenAIScorer(client PolarityCompleter) *OpenAIScorer {
	return &OpenAIScorer{client: client}
}

func (o *OpenAIScorer) Score(ctx context.Context, text string) (float64, error) {
	answer, err := o.client.CompletePolarity(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("[OpenAIScorer] %w: %w", ErrScoring, err)
	}
	return parsePolarity(answer)
}

func parsePolarity(answer string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil {
		return 0, fmt.Errorf("[OpenAIScorer] %w: unparseable answer %q", ErrScoring, answer)
	}
	switch {
	case score > 1:
		return 1, nil
	case score < -1:
		return -1, nil
	}
	return score, nil
}
