// Package main is the entry point for the planet generator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/planetgen/internal/config"
	"github.com/Faultbox/planetgen/internal/logger"
	"github.com/Faultbox/planetgen/internal/pipeline"
	"github.com/Faultbox/planetgen/internal/preview"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Planet Generator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Stop cleanly on Ctrl-C; a second signal kills the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("planet generated",
		zap.String("name", res.Name),
		zap.String("dir", res.Dir),
		zap.Int("chunks", res.Chunks),
		zap.Duration("elapsed", res.Elapsed))

	preview.Launch(cfg.Preview.Command, res.Dir)
}
