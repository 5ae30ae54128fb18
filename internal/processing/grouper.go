package processing

import "github.com/spacesedan/sentiscope/internal/models"

// Categorize buckets a polarity by sign. Only an exact zero is neutral.
func Categorize(polarity float64) string {
	switch {
	case polarity > 0:
		return models.CategoryPositive
	case polarity < 0:
		return models.CategoryNegative
	default:
		return models.CategoryNeutral
	}
}

// GroupBySentiment partitions posts by category in one pass, keeping input
// order inside each category. Empty categories are not present.
func GroupBySentiment(posts []models.AnalyzedPost) models.SentimentGrouping {
	grouping := make(models.SentimentGrouping, 3)
	for _, post := range posts {
		category := Categorize(post.Polarity)
		grouping[category] = append(grouping[category], post)
	}
	return grouping
}

// CountCategories returns how many posts fall into each category.
func CountCategories(posts []models.AnalyzedPost) map[string]int {
	counts := make(map[string]int, 3)
	for _, post := range posts {
		counts[Categorize(post.Polarity)]++
	}
	return counts
}
