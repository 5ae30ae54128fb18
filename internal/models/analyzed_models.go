package models

// Sentiment category keys used in grouped responses.
const (
	CategoryPositive = "1"
	CategoryNeutral  = "0"
	CategoryNegative = "-1"
)

// AnalyzedPost is the locally owned view of a post plus its polarity.
type AnalyzedPost struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	UserHandle string  `json:"user_handle"`
	UserName   string  `json:"user_name"`
	UserImgURL string  `json:"user_img_url"`
	Timestamp  string  `json:"timestamp"`
	Polarity   float64 `json:"polarity"`
}

// SentimentGrouping maps a category key to its posts in input order.
// Categories without posts are left out.
type SentimentGrouping map[string][]AnalyzedPost
