package models

import (
	"time"

	"github.com/google/uuid"
)

// AI tone constants for generated reply drafts.
const (
	ToneProfessional = "professional"
	ToneCasual       = "casual"
	ToneFriendly     = "friendly"
)

// Notifications holds per-channel notification preferences.
type Notifications struct {
	Email     bool `json:"email"`
	Dashboard bool `json:"dashboard"`
	Push      bool `json:"push"`
}

// DefaultNotifications returns the notification preferences for new settings rows.
func DefaultNotifications() Notifications {
	return Notifications{Email: true, Dashboard: true, Push: false}
}

// Settings holds a user's tracked keywords and reply preferences.
// Keywords are case-sensitive and unique within a user's set.
type Settings struct {
	UserID             uuid.UUID     `json:"user_id"`
	Keywords           []string      `json:"keywords"`
	AutoReplyEnabled   bool          `json:"auto_reply_enabled"`
	AITone             string        `json:"ai_tone"`
	MaxRepliesPerMonth int           `json:"max_replies_per_month"`
	Notifications      Notifications `json:"notifications"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
