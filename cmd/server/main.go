package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mentionwatch/internal/config"
	"mentionwatch/internal/db"
	"mentionwatch/internal/email"
	"mentionwatch/internal/jobs"
	"mentionwatch/internal/metrics"
	"mentionwatch/internal/server"
	"mentionwatch/internal/tracker"
	"mentionwatch/internal/twitter"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.IsDev() && os.Getenv("SEED_DEV") != "" {
		if err := database.SeedDev(ctx); err != nil {
			log.Printf("Warning: Failed to seed dev data: %v", err)
		}
	}

	// Metrics
	metrics.Init(database)

	// Ingestion pipeline
	searchClient := twitter.NewClient(cfg.TwitterAPIBaseURL, 0)
	notifier := email.NewNotifier(cfg, database)
	keywordTracker := tracker.New(database, searchClient, tracker.Options{
		MaxResults:            cfg.SearchMaxResults,
		RequestTimeout:        cfg.SearchRequestTimeout,
		AllowDuplicateMatches: cfg.AllowDuplicateMatches,
		Notifier:              notifier,
	})

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, keywordTracker); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Background tracking loop
	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	if cfg.TrackerEnabled {
		job := jobs.NewTrackerJob(keywordTracker, cfg.TrackerInterval)
		go job.Start(jobCtx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancelJobs()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
