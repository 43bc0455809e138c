// Package main is the entry point for the terrain tile generator.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/assets"
	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/pipeline"
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

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	params, err := pipeline.ParamsFromConfig(cfg.Generation)
	if err != nil {
		return err
	}

	res, err := pipeline.Generate(params, logger.Named("pipeline"))
	if err != nil {
		return err
	}

	if dropped := res.Grown - res.Shaded; dropped > 0 {
		logger.Warn("points unreachable from the origin were dropped",
			zap.Int("dropped", dropped),
			zap.Int("kept", res.Shaded))
	}

	logger.Debug("writing tile buffer",
		zap.String("dir", cfg.Output.Dir),
		zap.String("path", cfg.Output.Path))
	store := assets.NewStore(cfg.Output.Dir)
	n, err := pipeline.Export(store, cfg.Output.Path, res, logger.Named("pipeline"))
	if err != nil {
		return fmt.Errorf("failed to create/replace and fill data file: %w", err)
	}

	logger.Info("tile data generated",
		zap.Int("tiles", len(res.Tiles)),
		zap.Int("gsize", res.GSize),
		zap.Int("bytes", n),
		zap.Uint64("seed", res.Seed),
		zap.Duration("elapsed", res.Elapsed))
	return nil
}
