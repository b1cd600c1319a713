package api

import (
	"github.com/gofiber/fiber/v3"

	"mentionwatch/internal/models"
	"mentionwatch/internal/tracker"
)

// TweetHandler serves the stored-tweet read path.
type TweetHandler struct {
	tracker *tracker.Tracker
}

// NewTweetHandler creates a new tweet API handler.
func NewTweetHandler(t *tracker.Tracker) *TweetHandler {
	return &TweetHandler{tracker: t}
}

// List returns the session user's stored tweets filtered by their current
// keyword set, newest first, with reply drafts attached. No network calls.
func (h *TweetHandler) List(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tweets, err := h.tracker.Tweets(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tweets")
	}

	return jsonSuccess(c, fiber.Map{"tweets": tweets})
}
