package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentionwatch/internal/models"
)

// GetSettings retrieves a user's settings. Users who have never saved settings
// get the defaults back rather than an error.
func (d *DB) GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	query := `
		SELECT user_id, keywords, auto_reply_enabled, ai_tone, max_replies_per_month,
			notify_email, notify_dashboard, notify_push, updated_at
		FROM settings WHERE user_id = $1
	`

	var s models.Settings
	err := d.Pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.Keywords,
		&s.AutoReplyEnabled,
		&s.AITone,
		&s.MaxRepliesPerMonth,
		&s.Notifications.Email,
		&s.Notifications.Dashboard,
		&s.Notifications.Push,
		&s.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return &models.Settings{
			UserID:             userID,
			Keywords:           []string{},
			AITone:             models.ToneProfessional,
			MaxRepliesPerMonth: 50,
			Notifications:      models.DefaultNotifications(),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if s.Keywords == nil {
		s.Keywords = []string{}
	}
	return &s, nil
}

// UpsertSettings creates or replaces a user's settings row.
func (d *DB) UpsertSettings(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO settings (user_id, keywords, auto_reply_enabled, ai_tone, max_replies_per_month,
			notify_email, notify_dashboard, notify_push, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			keywords = EXCLUDED.keywords,
			auto_reply_enabled = EXCLUDED.auto_reply_enabled,
			ai_tone = EXCLUDED.ai_tone,
			max_replies_per_month = EXCLUDED.max_replies_per_month,
			notify_email = EXCLUDED.notify_email,
			notify_dashboard = EXCLUDED.notify_dashboard,
			notify_push = EXCLUDED.notify_push,
			updated_at = NOW()
		RETURNING updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		s.UserID,
		s.Keywords,
		s.AutoReplyEnabled,
		s.AITone,
		s.MaxRepliesPerMonth,
		s.Notifications.Email,
		s.Notifications.Dashboard,
		s.Notifications.Push,
	).Scan(&s.UpdatedAt)
}

// GetKeywords returns just the tracked keyword list for a user.
func (d *DB) GetKeywords(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var keywords []string
	err := d.Pool.QueryRow(ctx,
		`SELECT keywords FROM settings WHERE user_id = $1`, userID,
	).Scan(&keywords)

	if errors.Is(err, pgx.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if keywords == nil {
		keywords = []string{}
	}
	return keywords, nil
}

// GetSettingsCount returns the number of settings rows.
func (d *DB) GetSettingsCount(ctx context.Context) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM settings`).Scan(&count)
	return count, err
}
