package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordtrainer/internal/config"
	"wordtrainer/internal/database"
	"wordtrainer/internal/handlers"
	"wordtrainer/internal/logger"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/security"
	"wordtrainer/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	log.Info("Database connection established", "type", db.Dialect.DriverName())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	vocabRepo := repository.NewVocabularyRepository(db)
	resultRepo := repository.NewResultRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(ctx, cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Warn("Email service unavailable", "error", err)
	}
	vocabService := service.NewVocabularyService(vocabRepo)
	practiceService := service.NewPracticeService(vocabRepo, resultRepo, progressRepo, settingsRepo, emailService, service.NewPracticeRegistry())
	resultService := service.NewResultService(resultRepo, vocabRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	router := &handlers.Router{
		Health:     handlers.NewHealthHandler(db),
		Vocabulary: handlers.NewVocabularyHandler(vocabService),
		Practice:   handlers.NewPracticeHandler(practiceService),
		Results:    handlers.NewResultHandler(resultService),
		Settings:   handlers.NewSettingsHandler(settingsService),
	}

	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer limiter.Stop()

	handler := handlers.Chain(router.Mux(),
		handlers.Recovery(log),
		handlers.Logging(log),
		handlers.RateLimit(limiter),
	)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go expireIdlePractices(ctx, practiceService, cfg.PracticeIdleTimeout)

	go func() {
		log.Info("Server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}

	// Keep running practices resumable across restarts.
	if n := practiceService.ExpireIdle(shutdownCtx, 0); n > 0 {
		log.Info("Paused running practices", "count", n)
	}
}

// expireIdlePractices periodically pauses practices nobody touched for idle.
func expireIdlePractices(ctx context.Context, practices *service.PracticeService, idle time.Duration) {
	if idle <= 0 {
		return
	}
	interval := idle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			practices.ExpireIdle(ctx, idle)
		}
	}
}
