package main

import (
	"context"
	"log"

	"github.com/patrimonyd/patrimonyd/internal/config"
	"github.com/patrimonyd/patrimonyd/internal/db"
	"github.com/patrimonyd/patrimonyd/internal/logging"
	"github.com/patrimonyd/patrimonyd/internal/service"
	"github.com/patrimonyd/patrimonyd/internal/store"
	"github.com/patrimonyd/patrimonyd/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	snapshotStore := store.NewSnapshotStore(database)
	userStore := store.NewUserStore(database)
	lookupStore := store.NewLookupStore(database)

	seeder := service.NewSeeder(lookupStore, userStore, cfg.SeedDemo, logger)
	if err := seeder.Seed(context.Background()); err != nil {
		logger.Error("failed to seed reference data", "error", err)
		return
	}

	// No third-party identity provider is wired here; pass one in place of
	// nil to enable token login.
	sessionService := service.NewSessionService(userStore, nil, cfg.JWTSecret, cfg.TokenTTL, logger)
	patrimonyService := service.NewPatrimonyService(snapshotStore, logger)

	server := web.NewServer(patrimonyService, sessionService, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
