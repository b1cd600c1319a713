package models

import "github.com/google/uuid"

// KeywordStatus reports the outcome of one keyword's search request, so callers
// can tell "no matches" apart from "request failed".
type KeywordStatus struct {
	Keyword string `json:"keyword"`
	Found   int    `json:"found"`
	Error   string `json:"error,omitempty"`
}

// SearchResponse is returned from the search endpoint.
type SearchResponse struct {
	TweetsFound int             `json:"tweets_found"`
	Tweets      []Tweet         `json:"tweets"`
	Keywords    []KeywordStatus `json:"keywords"`
}

// TrackResult is one entry of a batch tracking run.
type TrackResult struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Keywords    []string  `json:"keywords"`
	TweetsFound int       `json:"tweets_found"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
}

// TrackingStats is the aggregation returned from the stats endpoint.
type TrackingStats struct {
	TotalKeywords int      `json:"total_keywords"`
	TotalTweets   int      `json:"total_tweets"`
	RecentTweets  int      `json:"recent_tweets"` // posted within the last 24h
	Keywords      []string `json:"keywords"`
}
