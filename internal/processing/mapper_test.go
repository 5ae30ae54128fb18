package processing

import (
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingScorer returns the polarity listed for each text and remembers
// every text it was asked to score.
type recordingScorer struct {
	scores map[string]float64
	err    error
	seen   []string
}

func (r *recordingScorer) Score(_ context.Context, text string) (float64, error) {
	r.seen = append(r.seen, text)
	if r.err != nil {
		return 0, r.err
	}
	return r.scores[text], nil
}

func newStatus(id, text string) models.TwitterStatus {
	return models.TwitterStatus{
		IDStr:     id,
		FullText:  text,
		CreatedAt: "Mon Jan 01 00:00:00 +0000 2024",
		User: &models.TwitterUser{
			ScreenName:           "user" + id,
			Name:                 "User " + id,
			ProfileImageURLHTTPS: "https://img/" + id + ".png",
		},
	}
}

func TestMapStatus_CopiesFieldsAndScoresOnce(t *testing.T) {
	scorer := &recordingScorer{scores: map[string]float64{"so good": 0.6}}
	status := newStatus("42", "so good")

	post, err := MapStatus(context.Background(), scorer, status, false)
	require.NoError(t, err)

	assert.Equal(t, models.AnalyzedPost{
		ID:         "42",
		Text:       "so good",
		UserHandle: "user42",
		UserName:   "User 42",
		UserImgURL: "https://img/42.png",
		Timestamp:  "Mon Jan 01 00:00:00 +0000 2024",
		Polarity:   0.6,
	}, post)
	assert.Equal(t, []string{"so good"}, scorer.seen)
}

func TestMapStatus_Fallbacks(t *testing.T) {
	status := models.TwitterStatus{
		IDStr: "7",
		Text:  "compat text",
		User:  &models.TwitterUser{ScreenName: "c", ProfileImageURL: "http://img/c.png"},
	}

	post, err := MapStatus(context.Background(), &recordingScorer{}, status, false)
	require.NoError(t, err)
	assert.Equal(t, "compat text", post.Text)
	assert.Equal(t, "http://img/c.png", post.UserImgURL)
}

func TestMapStatus_CleanTextOnlyAffectsScoring(t *testing.T) {
	scorer := &recordingScorer{}
	status := newStatus("1", "@bob loving it!!! https://t.co/x")

	post, err := MapStatus(context.Background(), scorer, status, true)
	require.NoError(t, err)
	assert.Equal(t, "@bob loving it!!! https://t.co/x", post.Text)
	assert.Equal(t, []string{"loving it"}, scorer.seen)
}

func TestMapStatus_DoesNotMutateInput(t *testing.T) {
	status := newStatus("1", "text")
	before := *status.User

	_, err := MapStatus(context.Background(), &recordingScorer{}, status, true)
	require.NoError(t, err)
	assert.Equal(t, before, *status.User)
	assert.Equal(t, "text", status.FullText)
}

func TestMapStatus_Malformed(t *testing.T) {
	noID := newStatus("", "x")
	noUser := newStatus("1", "x")
	noUser.User = nil

	for _, status := range []models.TwitterStatus{noID, noUser} {
		scorer := &recordingScorer{}
		_, err := MapStatus(context.Background(), scorer, status, false)
		assert.ErrorIs(t, err, ErrMalformedStatus)
		assert.Empty(t, scorer.seen)
	}
}

func TestMapStatus_ScoringError(t *testing.T) {
	scorer := &recordingScorer{err: sentiment.ErrScoring}
	_, err := MapStatus(context.Background(), scorer, newStatus("1", "x"), false)
	assert.ErrorIs(t, err, sentiment.ErrScoring)
	assert.False(t, errors.Is(err, ErrMalformedStatus))
}
