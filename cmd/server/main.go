package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ortografia/internal/config"
	"ortografia/internal/database"
	"ortografia/internal/database/migrations"
	"ortografia/internal/handlers"
	"ortografia/internal/repository"
	"ortografia/internal/security"
	"ortografia/internal/service"
)

func main() {
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()
	log.Info().Str("type", cfg.DatabaseType).Msg("database connection established")

	if err := db.RunMigrations(migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if cfg.SeedLevels {
		if err := db.SeedLevels(); err != nil {
			log.Fatal().Err(err).Msg("failed to seed levels")
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	levelRepo := repository.NewLevelRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Services
	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.EmailDebug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email service")
	}
	var reporter service.LevelReporter
	if emailService.IsEnabled() {
		reporter = emailService
	}

	progressService := service.NewProgressService(userRepo, levelRepo, progressRepo)
	gameService := service.NewGameService(userRepo, levelRepo, sessionRepo, progressService, reporter)
	userService := service.NewUserService(userRepo)

	limiter := security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	router := handlers.NewRouter(handlers.Handlers{
		Game:     handlers.NewGameHandler(gameService, limiter),
		Progress: handlers.NewProgressHandler(progressService),
		User:     handlers.NewUserHandler(userService),
	}, cfg.ClientOrigin)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
