// Package main is the entry point for the agency dashboard server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/thantzin/agencydesk/internal/config"
	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/logger"
	"gitlab.com/thantzin/agencydesk/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("agencydesk %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	store, err := kvstore.OpenFile(cfg.StorePath, cfg.StoreQuotaBytes)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("path", cfg.StorePath).Msg("Failed to open store")
	}

	if err := os.MkdirAll(cfg.DocumentsDir, 0o755); err != nil {
		logger.Log.Fatal().Err(err).Str("dir", cfg.DocumentsDir).Msg("Failed to create documents directory")
	}

	logger.Log.Info().
		Str("store", cfg.StorePath).
		Int64("quota", cfg.StoreQuotaBytes).
		Msg("Store opened")

	srv := server.New(cfg, store)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server failed")
	}
}
