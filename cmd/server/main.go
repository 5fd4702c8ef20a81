package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slpstats/replayd/internal/blobstore"
	"github.com/slpstats/replayd/internal/config"
	"github.com/slpstats/replayd/internal/queryengine"
	"github.com/slpstats/replayd/internal/replay"
	"github.com/slpstats/replayd/internal/web"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Query engine: remote HTTP service, or a local SQLite engine when no
	// URL is configured.
	var engine queryengine.Engine
	if cfg.QueryEngineURL != "" {
		engine = queryengine.NewClient(cfg.QueryEngineURL)
		log.Infof("Using remote query engine at %s", cfg.QueryEngineURL)
	} else {
		sqliteEngine, err := queryengine.NewSQLiteEngine(cfg.LocalDataPath)
		if err != nil {
			log.Fatalf("Failed to open local query engine: %v", err)
		}
		defer sqliteEngine.Close()
		engine = sqliteEngine
		log.Infof("Using local query engine at %s", cfg.LocalDataPath)
	}

	store, err := blobstore.OpenBadger(cfg.CachePath)
	if err != nil {
		log.Fatalf("Failed to open replay cache: %v", err)
	}
	defer store.Close()

	service := replay.NewService(engine, replay.Config{
		Database:       cfg.QueryDatabase,
		OutputLocation: cfg.QueryOutputLocation,
		PollInterval:   cfg.PollInterval,
		QueryTimeout:   cfg.QueryTimeout,
	}, log)
	cached := replay.NewCachedService(store, service, log)

	server := web.NewServer(cached, log, web.Config{
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server,
	}

	// Handle shutdown signals
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Info("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("HTTP server shutdown error: %v", err)
		}
	}()

	log.Infof("Server running on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}

	log.Info("Server stopped")
}
