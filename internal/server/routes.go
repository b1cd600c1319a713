package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mentionwatch/internal/db"
	"mentionwatch/internal/handlers"
	"mentionwatch/internal/handlers/api"
	"mentionwatch/internal/middleware"
	"mentionwatch/internal/tracker"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, t *tracker.Tracker) error {
	authMiddleware := middleware.NewAuthMiddleware(database)

	keywordHandler := api.NewKeywordHandler(t)
	tweetHandler := api.NewTweetHandler(t)
	settingsHandler := api.NewSettingsHandler(database)
	systemHandler := api.NewSystemHandler(database)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - OIDC is required; without a linked account there is no
	// search credential.
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. All users must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Keyword tracking API
	s.App.Post("/api/keywords/search", authMiddleware.RequireAuth, keywordHandler.Search)
	s.App.Get("/api/keywords/stats", authMiddleware.RequireAuth, keywordHandler.Stats)

	// Cron entry point; guarded by a shared secret, not a session. With no
	// secret configured the route rejects everything and schedulers should use
	// cmd/tracker instead.
	s.App.Post("/api/keywords/track", middleware.RequireCronSecret(s.Cfg.CronSecret), keywordHandler.Track)

	// Stored tweets read path
	s.App.Get("/api/tweets", authMiddleware.RequireAuth, tweetHandler.List)

	// Settings CRUD
	s.App.Get("/api/settings", authMiddleware.RequireAuth, settingsHandler.Get)
	s.App.Put("/api/settings", authMiddleware.RequireAuth, settingsHandler.Update)

	// Operational endpoints
	s.App.Get("/api/system", systemHandler.Check)
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
