package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/icsuite/wireplan/internal/api/rest"
	"github.com/icsuite/wireplan/internal/catalog"
	"github.com/icsuite/wireplan/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadOrDefault("configs/config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Config loaded successfully")

	cat, err := catalog.New()
	if err != nil {
		logger.Fatal("Failed to initialize vendor catalog", zap.Error(err))
	}
	for _, dir := range cfg.Catalog.SearchPaths {
		if err := cat.LoadDir(dir); err != nil {
			logger.Fatal("Failed to load vendor catalogs", zap.String("dir", dir), zap.Error(err))
		}
	}
	logger.Info("Vendor catalogs loaded", zap.Strings("vendors", cat.Vendors()))

	server := rest.NewServer(cfg, cat, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info("wireplan started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("wireplan stopped successfully")
}
