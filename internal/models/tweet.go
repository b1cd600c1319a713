package models

import (
	"time"

	"github.com/google/uuid"
)

// Tweet represents one item surfaced by the external search API, scoped to the
// user whose keyword produced it. TweetID is the opaque external identifier and
// the dedup key: for a given user there is at most one row per TweetID.
type Tweet struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	TweetID           string    `json:"tweet_id"`
	TweetText         string    `json:"tweet_text"`
	AuthorUsername    string    `json:"author_username"`
	AuthorDisplayName string    `json:"author_display_name"`
	MatchedKeywords   []string  `json:"matched_keywords"`
	PostedAt          time.Time `json:"posted_at"` // creation time reported by the external API
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Populated on read paths that join drafts.
	Replies []Reply `json:"replies,omitempty"`
}

// Reply is a drafted reply attached to a stored tweet.
type Reply struct {
	ID        uuid.UUID `json:"id"`
	TweetID   uuid.UUID `json:"tweet_id"` // references Tweet.ID, not the external id
	Content   string    `json:"content"`
	Status    string    `json:"status"` // draft, sent, discarded
	CreatedAt time.Time `json:"created_at"`
}

// Reply status constants
const (
	ReplyDraft     = "draft"
	ReplySent      = "sent"
	ReplyDiscarded = "discarded"
)
