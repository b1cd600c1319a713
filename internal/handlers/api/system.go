package api

import (
	"github.com/gofiber/fiber/v3"

	"mentionwatch/internal/db"
)

// SystemHandler serves an operational self-check with database counts.
type SystemHandler struct {
	db *db.DB
}

// NewSystemHandler creates a new system API handler.
func NewSystemHandler(database *db.DB) *SystemHandler {
	return &SystemHandler{db: database}
}

// Check verifies database connectivity and reports table counts.
func (h *SystemHandler) Check(c fiber.Ctx) error {
	users, err := h.db.GetUserCount(c.Context())
	if err != nil {
		return jsonErrorDetails(c, fiber.StatusInternalServerError, "system check failed", err.Error())
	}
	settings, err := h.db.GetSettingsCount(c.Context())
	if err != nil {
		return jsonErrorDetails(c, fiber.StatusInternalServerError, "system check failed", err.Error())
	}
	tweets, err := h.db.GetTweetCount(c.Context())
	if err != nil {
		return jsonErrorDetails(c, fiber.StatusInternalServerError, "system check failed", err.Error())
	}

	return jsonSuccess(c, fiber.Map{
		"message": "keyword tracking system is operational",
		"database": fiber.Map{
			"users":    users,
			"settings": settings,
			"tweets":   tweets,
		},
	})
}
