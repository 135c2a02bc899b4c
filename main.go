package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/config"
	server "github.com/mauv0809/ace-ranking/internal/http"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/notifier/slack"
	"github.com/mauv0809/ace-ranking/internal/processor"
	"github.com/mauv0809/ace-ranking/internal/store"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	log.SetLevel(cfg.Level())

	repo, storeTeardown, err := store.Open(cfg)
	storeInitDuration := time.Since(startTime)
	log.Info("Storage initialization time recorded", "backend", cfg.StorageBackend, "duration_ms", storeInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize storage: %s", err)
	}
	defer func() {
		log.Info("Closing storage")
		storeTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	clubStore, err := club.New(context.Background(), repo, metricsSvc,
		club.WithLocation(cfg.Location()),
		club.WithStrictMatchTypes(cfg.StrictMatchTypes),
	)
	if err != nil {
		log.Fatalf("Failed to load club state: %s", err)
	}

	if !cfg.Slack.Enabled() {
		log.Warn("Slack is not configured, notifications will only be logged")
	}
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	processor := processor.New(clubStore, notifier, metricsSvc)

	s := server.NewServer(
		clubStore,
		metricsSvc,
		metricsHandler,
		cfg,
		notifier,
		processor,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port, "members", len(clubStore.Members()))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
