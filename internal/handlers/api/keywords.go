package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"mentionwatch/internal/db"
	"mentionwatch/internal/models"
	"mentionwatch/internal/tracker"
)

// KeywordHandler exposes the keyword tracking pipeline over the JSON API.
type KeywordHandler struct {
	tracker *tracker.Tracker
}

// NewKeywordHandler creates a new keyword API handler.
func NewKeywordHandler(t *tracker.Tracker) *KeywordHandler {
	return &KeywordHandler{tracker: t}
}

// Search runs a search pass over the session user's tracked keywords and
// returns the newly found tweets along with per-keyword statuses.
func (h *KeywordHandler) Search(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.tracker.SearchKeywords(c.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrNoKeywords):
			return jsonError(c, fiber.StatusBadRequest, "no keywords configured")
		case errors.Is(err, tracker.ErrMissingCredential):
			return jsonErrorDetails(c, fiber.StatusBadGateway, "failed to search tweets", err.Error())
		case errors.Is(err, db.ErrUserNotFound):
			return jsonError(c, fiber.StatusNotFound, "user not found")
		default:
			return jsonErrorDetails(c, fiber.StatusBadGateway, "failed to search tweets", err.Error())
		}
	}

	return jsonSuccess(c, result)
}

// Stats returns the tracking aggregation for the session user.
func (h *KeywordHandler) Stats(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := h.tracker.Stats(c.Context(), user.ID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}

	return jsonSuccess(c, stats)
}

// Track is the cron-facing entry point: run the pipeline for the user id in
// the body. Pipeline failures are reported inside the result, never as an HTTP
// error, so automated callers always get a result entry.
func (h *KeywordHandler) Track(c fiber.Ctx) error {
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "user id required")
	}

	result := h.tracker.TrackUser(c.Context(), userID)
	return jsonSuccess(c, result)
}
