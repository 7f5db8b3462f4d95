package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yerzhan/acecards/internal/api"
	"github.com/yerzhan/acecards/internal/config"
	"github.com/yerzhan/acecards/internal/db"
	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/repository/sqlite"
	"github.com/yerzhan/acecards/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("AceCards Scheduler Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_session_size=%d", cfg.DefaultSessionSize)
	log.Debug("max_session_size=%d", cfg.MaxSessionSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories share the single database handle for the process lifetime.
	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	srv := &api.Server{
		CatalogService: services.NewCatalogService(learnerRepo, deckRepo, cardRepo),
		ReviewService:  services.NewReviewService(cardRepo, reviewRepo, cfg.DefaultSessionSize, cfg.MaxSessionSize),
		StatsService:   services.NewStatsService(statsRepo, reviewRepo, cardRepo),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("AceCards Scheduler Stopped")
	log.Info("===========================================")
}
