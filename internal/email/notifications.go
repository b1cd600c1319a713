package email

import (
	"context"
	"log"

	"github.com/google/uuid"

	"mentionwatch/internal/config"
	"mentionwatch/internal/models"
)

// RecipientGetter is the persistence surface the notifier needs to resolve a
// recipient and their notification preferences. *db.DB satisfies it.
type RecipientGetter interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error)
}

// Notifier sends email notifications for tracking events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	db        RecipientGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db RecipientGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		db:        db,
	}
}

// NotifyNewMentions emails a user a digest of the tweets a tracking pass just
// found, honoring the user's email notification preference. Passes that found
// nothing are silent.
func (n *Notifier) NotifyNewMentions(ctx context.Context, userID uuid.UUID, result *models.SearchResponse) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyNewMentions {
		return
	}

	if result == nil || result.TweetsFound == 0 {
		return
	}

	settings, err := n.db.GetSettings(ctx, userID)
	if err != nil {
		log.Printf("Failed to get settings for notification: %v", err)
		return
	}
	if !settings.Notifications.Email {
		return
	}

	user, err := n.db.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("Failed to get user for notification: %v", err)
		return
	}
	if user.Email == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.NewMentions(user, result)
	n.service.SendAsync([]string{user.Email}, subject, htmlBody, textBody)
}
