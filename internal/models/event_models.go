package models

import "time"

// AnalysisEvent summarises one completed analysis for downstream consumers.
// It never carries the posts themselves.
type AnalysisEvent struct {
	EventID      string         `json:"event_id"`
	QueryPhrase  string         `json:"query_phrase"`
	PostCount    int            `json:"post_count"`
	Categories   map[string]int `json:"categories"`
	MeanPolarity float64        `json:"mean_polarity"`
	Backend      string         `json:"backend"`
	Timestamp    time.Time      `json:"timestamp"`
}
