package db

import (
	"context"
	"fmt"
	"time"

	"mentionwatch/internal/models"
)

// SeedDev inserts test users, settings, and tweets for development. Existing
// rows are left alone.
func (d *DB) SeedDev(ctx context.Context) error {
	users := []struct {
		sub      string
		username string
		display  string
		email    string
		plan     string
		keywords []string
	}{
		{"seed-user-1", "testuser1", "Test User 1", "test1@example.com", models.PlanFree, []string{"#AI", "#SaaS", "#startup"}},
		{"seed-user-2", "testuser2", "Test User 2", "test2@example.com", models.PlanPro, []string{"#marketing", "#growth", "#business"}},
	}

	for _, u := range users {
		user := &models.User{
			Sub:         u.sub,
			Username:    u.username,
			DisplayName: u.display,
			Email:       u.email,
			PlanType:    u.plan,
		}
		if err := d.UpsertUser(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}

		settings := &models.Settings{
			UserID:             user.ID,
			Keywords:           u.keywords,
			AutoReplyEnabled:   true,
			AITone:             models.ToneProfessional,
			MaxRepliesPerMonth: 50,
			Notifications:      models.DefaultNotifications(),
		}
		if err := d.UpsertSettings(ctx, settings); err != nil {
			return fmt.Errorf("failed to seed settings for %s: %w", u.username, err)
		}

		tweet := &models.Tweet{
			UserID:            user.ID,
			TweetID:           "seed-" + u.sub,
			TweetText:         fmt.Sprintf("Sample mention for %s", u.keywords[0]),
			AuthorUsername:    "randomuser",
			AuthorDisplayName: "Random User",
			PostedAt:          time.Now().Add(-time.Hour),
		}
		if _, err := d.UpsertTweet(ctx, tweet, u.keywords[0], true); err != nil {
			return fmt.Errorf("failed to seed tweet for %s: %w", u.username, err)
		}
	}

	return nil
}
