package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaughan-dsouza/jemaat/internal/config"
	"github.com/vaughan-dsouza/jemaat/internal/db"
	"github.com/vaughan-dsouza/jemaat/internal/handlers"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/members"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN, db.Options{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		logger.Error(ctx, "db connect", "err", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, dbConn, logger); err != nil {
			logger.Error(ctx, "db migrate", "err", err)
			os.Exit(1)
		}
	}

	h := handlers.NewHandler(dbConn, logger, handlers.Options{
		SecretKey:     cfg.SecretKey,
		TokenTTL:      cfg.TokenTTL,
		Limits:        members.Limits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize},
		PublicListing: cfg.PublicListing,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Routes(cfg.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "listening", "addr", srv.Addr, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "listen", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", "err", err)
	}

	logger.Info(ctx, "server exited")
}
