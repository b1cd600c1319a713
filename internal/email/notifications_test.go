package email

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"mentionwatch/internal/config"
	"mentionwatch/internal/models"
)

// recordingGetter records which lookups the notifier performed.
type recordingGetter struct {
	user     *models.User
	settings *models.Settings

	settingsCalls int
	userCalls     int
}

func (g *recordingGetter) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	g.userCalls++
	return g.user, nil
}

func (g *recordingGetter) GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	g.settingsCalls++
	return g.settings, nil
}

func smtpConfig() *config.Config {
	return &config.Config{
		SMTPEnabled:            true,
		SMTPHost:               "smtp.test.com",
		SMTPPort:               587,
		SMTPFrom:               "noreply@test.com",
		SiteTitle:              "Test",
		BaseURL:                "https://test.example.com",
		EmailNotifyNewMentions: true,
	}
}

func mentionResult(found int) *models.SearchResponse {
	result := &models.SearchResponse{
		TweetsFound: found,
		Keywords:    []models.KeywordStatus{{Keyword: "golang", Found: found}},
	}
	for i := 0; i < found; i++ {
		result.Tweets = append(result.Tweets, models.Tweet{
			TweetText:         "mention",
			AuthorUsername:    "author",
			AuthorDisplayName: "Author",
			PostedAt:          time.Now(),
		})
	}
	return result
}

func TestNewNotifier(t *testing.T) {
	cfg := &config.Config{SMTPEnabled: false, SiteTitle: "Test"}
	notifier := NewNotifier(cfg, nil)

	if notifier == nil {
		t.Fatal("NewNotifier returned nil")
	}
	if notifier.service == nil {
		t.Error("Notifier service is nil")
	}
	if notifier.templates == nil {
		t.Error("Notifier templates is nil")
	}
}

func TestNotifyNewMentions_SMTPDisabled(t *testing.T) {
	getter := &recordingGetter{}
	notifier := NewNotifier(&config.Config{SMTPEnabled: false, EmailNotifyNewMentions: true}, getter)

	notifier.NotifyNewMentions(context.Background(), uuid.New(), mentionResult(2))

	if getter.settingsCalls != 0 || getter.userCalls != 0 {
		t.Error("disabled service still resolved the recipient")
	}
}

func TestNotifyNewMentions_ToggleDisabled(t *testing.T) {
	getter := &recordingGetter{}
	cfg := smtpConfig()
	cfg.EmailNotifyNewMentions = false
	notifier := NewNotifier(cfg, getter)

	notifier.NotifyNewMentions(context.Background(), uuid.New(), mentionResult(2))

	if getter.settingsCalls != 0 {
		t.Error("disabled toggle still resolved the recipient")
	}
}

func TestNotifyNewMentions_NothingFound(t *testing.T) {
	getter := &recordingGetter{}
	notifier := NewNotifier(smtpConfig(), getter)

	notifier.NotifyNewMentions(context.Background(), uuid.New(), mentionResult(0))

	if getter.settingsCalls != 0 {
		t.Error("empty pass still resolved the recipient")
	}
}

func TestNotifyNewMentions_UserOptedOut(t *testing.T) {
	getter := &recordingGetter{
		settings: &models.Settings{Notifications: models.Notifications{Email: false}},
	}
	notifier := NewNotifier(smtpConfig(), getter)

	notifier.NotifyNewMentions(context.Background(), uuid.New(), mentionResult(2))

	if getter.settingsCalls != 1 {
		t.Errorf("settingsCalls = %d, want 1", getter.settingsCalls)
	}
	if getter.userCalls != 0 {
		t.Error("opted-out user was still resolved for delivery")
	}
}

func TestNotifyNewMentions_NoEmailAddress(t *testing.T) {
	getter := &recordingGetter{
		settings: &models.Settings{Notifications: models.Notifications{Email: true}},
		user:     &models.User{Username: "alice", Email: ""},
	}
	notifier := NewNotifier(smtpConfig(), getter)

	// Should not panic; there is nowhere to deliver.
	notifier.NotifyNewMentions(context.Background(), uuid.New(), mentionResult(2))

	if getter.userCalls != 1 {
		t.Errorf("userCalls = %d, want 1", getter.userCalls)
	}
}
