package main

import (
	"context"
	"flag"

	"go-link-shortener/config"
	"go-link-shortener/server"
	"go.uber.org/zap"
)

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
}

func main() {
	defer logger.Sync()

	disableRateLimit := flag.Bool("disable-rate-limit", false, "Disable rate limiting for performance testing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	if *disableRateLimit {
		cfg.DisableRateLimit = true
	}

	logger.Info("Starting link shortener application...",
		zap.String("address", cfg.ServerAddress),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("rate_limit_disabled", cfg.DisableRateLimit))
	if err := server.Run(context.Background(), logger, cfg); err != nil {
		logger.Fatal("Application error", zap.Error(err))
	}
	logger.Info("Link shortener application stopped.")
}
