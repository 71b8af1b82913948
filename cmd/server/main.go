package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/api"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/logging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/messaging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.Load()

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Optional web log viewer
	if cfg.LogdyEnabled {
		writer, url, err := logging.StartLogdy(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to start Logdy, continuing with console logging")
		} else {
			log.Logger = log.Output(io.MultiWriter(zerolog.ConsoleWriter{Out: os.Stderr}, writer))
			log.Info().Str("url", url).Msg("Logdy web log viewer started")
		}
	}

	log.Info().
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("db_path", cfg.DBPath).
		Msg("Starting surveillance backend")

	// Open the alert store
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("Failed to open alert store")
	}

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.Init(initCtx); err != nil {
		initCancel()
		log.Fatal().Err(err).Msg("Failed to initialize alert store schema")
	}
	initCancel()

	// NATS is optional: without it detections only arrive over HTTP
	msg, err := messaging.NewService(cfg)
	if err != nil {
		log.Warn().Err(err).Str("url", cfg.NatsURL).Msg("NATS unavailable, detection stream disabled")
		msg = nil
	}

	sc, err := services.NewServiceContainer(cfg, st, msg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	server := api.NewServer(cfg, sc)
	if err := server.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up API server")
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := sc.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Service shutdown failed")
	} else {
		log.Info().Msg("Shutdown complete")
	}
}
