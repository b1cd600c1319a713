package models

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTwitter is the provider key for credentials captured from the
// Twitter/X OAuth flow.
const ProviderTwitter = "twitter"

// Credential is a bearer token for the external search API, captured when the
// user links their account. One row per (user, provider). Expiry is managed by
// the OAuth flow, not by the tracking pipeline.
type Credential struct {
	UserID       uuid.UUID  `json:"user_id"`
	Provider     string     `json:"provider"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
