// Package main is the entry point for the showroom viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/app"
	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.FilePath = cfg.Logging.LogFile
	logger.Init(opts)

	logger.Info("=== Showroom ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	os.Exit(run(cfg))
}

// run keeps the deferred cleanup ahead of os.Exit.
func run(cfg *config.Config) int {
	defer logger.Sync()

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		return 1
	}

	code := 0
	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		code = 1
	}
	if err := a.Close(); err != nil {
		logger.Warn("teardown reported errors", zap.Error(err))
	}

	if code == 0 {
		logger.Info("viewer closed normally")
	}
	return code
}
