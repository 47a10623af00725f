package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quotepulse/api/analytics"
	"quotepulse/api/database"
	"quotepulse/api/handlers"
	"quotepulse/api/middleware"
	"quotepulse/api/store"
	"quotepulse/api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on process environment")
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- User database (Postgres) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL")
	}
	defer dbClient.Close()

	// --- Event archive (ClickHouse, optional) ---
	var archive analytics.Archiver
	if database.Configured() {
		chClient, err := database.NewClickHouseDB()
		if err != nil {
			// The archive is best-effort by contract; run without it.
			log.Warn().Err(err).Msg("ClickHouse unavailable, running without event archive")
		} else {
			defer chClient.Close()
			archive = store.NewArchiveStore(chClient)
		}
	}

	// --- Analytics engine: constructed once, injected, closed on exit ---
	var persist analytics.Persistence
	if path := utils.EnvOr("ANALYTICS_SNAPSHOT_PATH", "analytics_events.json"); path != "none" {
		persist = analytics.NewFileSnapshot(path)
	}
	eventStore := analytics.NewEventStore(
		utils.EnvIntOr("ANALYTICS_MAX_EVENTS", analytics.DefaultCapacity),
		persist,
		log.Logger,
	)
	engine := analytics.NewEngine(eventStore, archive, log.Logger)
	defer engine.Close()

	userStore := store.NewUserStore(dbClient.DB)
	authHandlers := handlers.NewAuthHandlers(userStore, engine)
	analyticsHandlers := handlers.NewAnalyticsHandlers(engine)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		protected := api.Group("/")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/track", analyticsHandlers.TrackEvent)

			insights := protected.Group("/insights")
			{
				insights.GET("/user/:userId", analyticsHandlers.GetUserInsights)
				insights.GET("/app", analyticsHandlers.GetAppInsights)
			}

			protected.DELETE("/analytics", analyticsHandlers.ClearAnalytics)
			protected.GET("/analytics/export", analyticsHandlers.ExportAnalytics)
		}
	}

	port := utils.EnvOr("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", port).Msg("analytics API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
