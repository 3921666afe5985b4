package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"birthdayreminder/internal/config"
	"birthdayreminder/internal/database"
	"birthdayreminder/internal/domain/service"
	"birthdayreminder/internal/handlers"
	"birthdayreminder/internal/mailer"
	"birthdayreminder/internal/scheduler"
	"birthdayreminder/migrator/sqlite"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	logger.Info().Msg("running migrations")
	if err := sqlite.Migrate(db.DB()); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	smtp, err := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		AppName:  cfg.AppName,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize mailer")
	}

	dm := database.NewInstance(db)
	services := service.New(dm, smtp, logger, service.AuthConfig{
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenDuration,
	})

	if cfg.SchedulerEnabled {
		sched := scheduler.New(services.Scheduler, cfg.SchedulerCron, logger)
		if err := sched.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start scheduler")
		}
		defer sched.Stop()
	} else {
		logger.Warn().Msg("notification scheduler disabled")
	}

	handler := handlers.New(services, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Router(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
}
