package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBatchAnalyzer struct {
	resp    models.SentimentAnalysisBatchResponse
	err     error
	healthy bool
	got     models.SentimentAnalysisBatchRequest
}

func (f *fakeBatchAnalyzer) GetBatchedSentimentAnalysis(_ context.Context, in models.SentimentAnalysisBatchRequest) (models.SentimentAnalysisBatchResponse, error) {
	f.got = in
	return f.resp, f.err
}

func (f *fakeBatchAnalyzer) AnalyzerHealthCheck(context.Context) bool { return f.healthy }

func TestHuggingFaceScorer(t *testing.T) {
	fake := &fakeBatchAnalyzer{
		resp:    models.SentimentAnalysisBatchResponse{{ContentID: "0", SentimentScore: -0.42}},
		healthy: true,
	}
	s := NewHuggingFaceScorer(fake)

	score, err := s.Score(context.Background(), "not great")
	require.NoError(t, err)
	assert.Equal(t, -0.42, score)
	require.Len(t, fake.got, 1)
	assert.Equal(t, "not great", fake.got[0].Text)
	assert.True(t, s.Healthy(context.Background()))
}

func TestHuggingFaceScorer_Errors(t *testing.T) {
	s := NewHuggingFaceScorer(&fakeBatchAnalyzer{err: errors.New("boom")})
	_, err := s.Score(context.Background(), "x")
	assert.ErrorIs(t, err, ErrScoring)

	s = NewHuggingFaceScorer(&fakeBatchAnalyzer{})
	_, err = s.Score(context.Background(), "x")
	assert.ErrorIs(t, err, ErrScoring)
}

type fakeCompleter struct {
	answer string
	err    error
}

func (f fakeCompleter) CompletePolarity(context.Context, string) (string, error) {
	return f.answer, f.err
}

func TestOpenAIScorer(t *testing.T) {
	cases := map[string]float64{
		"0.35":  0.35,
		" -0.8": -0.8,
		"0":     0,
		"3":     1,
		"-7.5":  -1,
	}
	for answer, want := range cases {
		score, err := NewOpenAIScorer(fakeCompleter{answer: answer}).Score(context.Background(), "x")
		require.NoError(t, err, answer)
		assert.Equal(t, want, score, answer)
	}

	_, err := NewOpenAIScorer(fakeCompleter{answer: "positive"}).Score(context.Background(), "x")
	assert.ErrorIs(t, err, ErrScoring)

	_, err = NewOpenAIScorer(fakeCompleter{err: errors.New("quota")}).Score(context.Background(), "x")
	assert.ErrorIs(t, err, ErrScoring)
}

type memoryStore struct {
	scores  map[string]float64
	getErr  error
	setErr  error
	setTTLs []time.Duration
}

func newMemoryStore() *memoryStore { return &memoryStore{scores: map[string]float64{}} }

func (m *memoryStore) GetScore(_ context.Context, key string) (float64, bool, error) {
	if m.getErr != nil {
		return 0, false, m.getErr
	}
	s, ok := m.scores[key]
	return s, ok, nil
}

func (m *memoryStore) SetScore(_ context.Context, key string, score float64, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.scores[key] = score
	m.setTTLs = append(m.setTTLs, ttl)
	return nil
}

func countingScorer(score float64, calls *int) Scorer {
	return ScorerFunc(func(context.Context, string) (float64, error) {
		*calls++
		return score, nil
	})
}

func TestCachedScorer_MemoisesByText(t *testing.T) {
	calls := 0
	store := newMemoryStore()
	c := NewCachedScorer(countingScorer(0.5, &calls), store, "vader", time.Hour)

	for i := 0; i < 3; i++ {
		score, err := c.Score(context.Background(), "same text")
		require.NoError(t, err)
		assert.Equal(t, 0.5, score)
	}
	assert.Equal(t, 1, calls)

	_, err := c.Score(context.Background(), "other text")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, store.scores, 2)
	assert.Equal(t, []time.Duration{time.Hour, time.Hour}, store.setTTLs)
}

func TestCachedScorer_StoreFailuresFallThrough(t *testing.T) {
	calls := 0
	store := newMemoryStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	c := NewCachedScorer(countingScorer(-0.25, &calls), store, "vader", time.Hour)

	score, err := c.Score(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, -0.25, score)
	assert.Equal(t, 1, calls)
}

func TestCachedScorer_ScorerErrorIsNotStored(t *testing.T) {
	store := newMemoryStore()
	failing := ScorerFunc(func(context.Context, string) (float64, error) {
		return 0, ErrScoring
	})
	c := NewCachedScorer(failing, store, "openai", time.Hour)

	_, err := c.Score(context.Background(), "text")
	assert.ErrorIs(t, err, ErrScoring)
	assert.Empty(t, store.scores)
}

func TestCachedScorer_KeysAreBackendScoped(t *testing.T) {
	a := NewCachedScorer(nil, nil, "vader", 0)
	b := NewCachedScorer(nil, nil, "openai", 0)
	assert.NotEqual(t, a.key("x"), b.key("x"))
	assert.Equal(t, a.key("x"), a.key("x"))
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{}

	cfg.Sentiment.Backend = config.SentimentBackendVader
	s, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &VaderScorer{}, s)

	cfg.Sentiment.Backend = config.SentimentBackendHuggingFace
	s, err = NewFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &HuggingFaceScorer{}, s)

	cfg.Sentiment.Backend = config.SentimentBackendOpenAI
	cfg.OpenAI.APIKey = "sk-test"
	s, err = NewFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIScorer{}, s)

	cfg.Sentiment.Backend = "textblob"
	_, err = NewFromConfig(cfg)
	assert.Error(t, err)
}
