// Package bootstrap wires the scoring service components together for the
// entrypoints: configuration, logging, catalog, engine, advisor, and the
// HTTP server.
package bootstrap

import (
	"fmt"
	"log"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/config"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
)

// LoadConfig loads configuration. Uses defaults if the file doesn't exist.
func LoadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config file (%s), using defaults: %v", configPath, err)
		cfg = &config.Config{}
		config.SetDefaults(cfg)
		return cfg, nil
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	l, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return l.With(logger.String("service", cfg.Service.Name)), nil
}
