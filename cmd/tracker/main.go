// Command tracker runs one batch tracking pass for every user with tracked
// keywords, then exits. Intended for cron.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"mentionwatch/internal/config"
	"mentionwatch/internal/db"
	"mentionwatch/internal/email"
	"mentionwatch/internal/tracker"
	"mentionwatch/internal/twitter"
)

func main() {
	userFlag := flag.String("user", "", "track a single user id instead of all users")
	flag.Parse()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	searchClient := twitter.NewClient(cfg.TwitterAPIBaseURL, 0)
	notifier := email.NewNotifier(cfg, database)
	keywordTracker := tracker.New(database, searchClient, tracker.Options{
		MaxResults:            cfg.SearchMaxResults,
		RequestTimeout:        cfg.SearchRequestTimeout,
		AllowDuplicateMatches: cfg.AllowDuplicateMatches,
		Notifier:              notifier,
	})

	if *userFlag != "" {
		userID, err := uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("Invalid user id: %v", err)
		}
		result := keywordTracker.TrackUser(ctx, userID)
		if !result.Success {
			log.Printf("User %s: failed: %s", result.UserID, result.Error)
			os.Exit(1)
		}
		log.Printf("User %s: %d tweets found", result.UserID, result.TweetsFound)
		return
	}

	results, err := keywordTracker.TrackAllUsers(ctx)
	if err != nil {
		log.Fatalf("Batch run failed: %v", err)
	}

	for _, r := range results {
		if r.Success {
			log.Printf("User %s (%s): %d tweets found", r.UserID, r.Username, r.TweetsFound)
		} else {
			log.Printf("User %s (%s): failed: %s", r.UserID, r.Username, r.Error)
		}
	}
}
