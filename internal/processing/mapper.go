package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/sentiment"
)

var ErrMalformedStatus = errors.New("processing: malformed status")

// MapStatus converts a search status into an AnalyzedPost, scoring its text
// exactly once. With cleanText the scorer sees sentiment.CleanText(text) but
// the returned post keeps the text as posted.
func MapStatus(ctx context.Context, scorer sentiment.Scorer, status models.TwitterStatus, cleanText bool) (models.AnalyzedPost, error) {
	if status.IDStr == "" {
		return models.AnalyzedPost{}, fmt.Errorf("[MapStatus] %w: missing id_str", ErrMalformedStatus)
	}
	if status.User == nil {
		return models.AnalyzedPost{}, fmt.Errorf("[MapStatus] %w: status %s has no user", ErrMalformedStatus, status.IDStr)
	}

	text := statusText(status)
	scored := text
	if cleanText {
		scored = sentiment.CleanText(text)
	}

	polarity, err := scorer.Score(ctx, scored)
	if err != nil {
		return models.AnalyzedPost{}, fmt.Errorf("[MapStatus] failed to score status %s: %w", status.IDStr, err)
	}

	return models.AnalyzedPost{
		ID:         status.IDStr,
		Text:       text,
		UserHandle: status.User.ScreenName,
		UserName:   status.User.Name,
		UserImgURL: avatarURL(status.User),
		Timestamp:  status.CreatedAt,
		Polarity:   polarity,
	}, nil
}

// compat mode only fills text
func statusText(status models.TwitterStatus) string {
	if status.FullText != "" {
		return status.FullText
	}
	return status.Text
}

func avatarURL(user *models.TwitterUser) string {
	if user.ProfileImageURLHTTPS != "" {
		return user.ProfileImageURLHTTPS
	}
	return user.ProfileImageURL
}
