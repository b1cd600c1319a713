package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"mentionwatch/internal/db"
	"mentionwatch/internal/models"
	"mentionwatch/internal/validation"
)

// SettingsHandler handles the settings CRUD endpoints.
type SettingsHandler struct {
	db *db.DB
}

// NewSettingsHandler creates a new settings API handler.
func NewSettingsHandler(database *db.DB) *SettingsHandler {
	return &SettingsHandler{db: database}
}

// Get returns the session user's settings, falling back to defaults for users
// who have never saved any.
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := h.db.GetSettings(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch settings")
	}

	return jsonSuccess(c, settings)
}

// Update applies a partial settings update. Absent fields keep their stored
// values.
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Keywords           *[]string             `json:"keywords"`
		AutoReplyEnabled   *bool                 `json:"auto_reply_enabled"`
		AITone             *string               `json:"ai_tone"`
		MaxRepliesPerMonth *int                  `json:"max_replies_per_month"`
		Notifications      *models.Notifications `json:"notifications"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	settings, err := h.db.GetSettings(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch settings")
	}

	if body.Keywords != nil {
		keywords := validation.NormalizeKeywords(*body.Keywords)
		if ok, msg := validation.ValidateKeywords(keywords); !ok {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
		settings.Keywords = keywords
	}
	if body.AutoReplyEnabled != nil {
		settings.AutoReplyEnabled = *body.AutoReplyEnabled
	}
	if body.AITone != nil {
		if !validation.ValidTone(*body.AITone) {
			return jsonError(c, fiber.StatusBadRequest, "invalid ai tone")
		}
		settings.AITone = *body.AITone
	}
	if body.MaxRepliesPerMonth != nil {
		if *body.MaxRepliesPerMonth < 0 {
			return jsonError(c, fiber.StatusBadRequest, "max replies must not be negative")
		}
		settings.MaxRepliesPerMonth = *body.MaxRepliesPerMonth
	}
	if body.Notifications != nil {
		settings.Notifications = *body.Notifications
	}

	settings.UserID = user.ID
	if err := h.db.UpsertSettings(c.Context(), settings); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save settings")
	}

	return jsonSuccess(c, settings)
}
