// Package cli provides common initialization shared by cmd/flowcash and
// cmd/flowcash-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"flowcash/internal/config"
	applog "flowcash/internal/log"
)

// Setup loads the optional .env file, installs the default structured
// logger, and returns a validated configuration. It exits the process when
// the configuration is unusable.
func Setup(component string) (*applog.Logger, *config.Config) {
	// .env is for local development; absent in containers.
	_ = godotenv.Load()

	logCfg := applog.DefaultConfig()
	logCfg.Component = component
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	return logger, cfg
}
