package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brewpulse/backend/internal/acquire"
	"github.com/brewpulse/backend/internal/config"
	httpapi "github.com/brewpulse/backend/internal/http"
	"github.com/brewpulse/backend/internal/service"
	"github.com/brewpulse/backend/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "brewpulse-backend").Logger()

	cache := snapshot.NewCache(cfg.MinRealRecords)
	loader := &service.Loader{Cache: cache, Logger: logger}
	fetcher := acquire.NewFetcher(cfg.MaxUploadSizeMB<<20, 0)

	if cfg.DataFile != "" {
		text, err := acquire.ReadFile(cfg.DataFile)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.DataFile).Msg("boot dataset load failed")
		} else {
			summary := loader.LoadCSV(text, cfg.DataFile)
			logger.Info().
				Int("records", summary.RecordsKept).
				Bool("sufficient_real_data", cache.HasSufficientRealData()).
				Msg("boot dataset loaded")
		}
	}

	router := httpapi.Router(cfg, cache, loader, fetcher, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
