// The httpd command runs the lead scoring HTTP service.
package main

import (
	"context"
	"log"
	"os"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/bootstrap"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logr, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = logr.Sync()
	}()

	logr.Info("Starting lead scoring service",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	components, err := bootstrap.NewHTTPComponents(cfg, logr)
	if err != nil {
		return err
	}

	return components.Server.RunWithGracefulShutdown(context.Background())
}
