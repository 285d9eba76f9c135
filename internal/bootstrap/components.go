package bootstrap

import (
	"fmt"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/api"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/catalog"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/chat"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/config"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/httpserver"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logging"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/processor"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/scoring"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/telemetry"
)

// HTTPComponents holds all components needed for the HTTP server.
type HTTPComponents struct {
	Engine    *scoring.Engine
	Handler   *api.Handler
	Server    *httpserver.Server
	Telemetry *telemetry.Provider
}

// NewHTTPComponents creates all components for the HTTP server.
func NewHTTPComponents(cfg *config.Config, log logger.Logger) (*HTTPComponents, error) {
	compiled, err := loadCatalog(cfg, log)
	if err != nil {
		return nil, err
	}

	tp := telemetry.NewProvider()
	kv := logging.NewAdapter(log)

	engine := scoring.NewEngine(compiled, log, tp)
	log.Info("Scoring engine initialized",
		logger.Int("keywords", len(compiled.Catalog().HighKeywords)+
			len(compiled.Catalog().MediumKeywords)+
			len(compiled.Catalog().NegativeKeywords)),
		logger.Int("role_tiers", len(compiled.Catalog().RoleTiers)),
	)

	batchScorer := processor.NewBatchScorer(engine, cfg.Service.Concurrency, kv, tp)
	log.Info("Batch scorer initialized", logger.Int("concurrency", batchScorer.Concurrency()))

	advisor := createAdvisor(cfg, kv, tp, log)

	handler := api.NewHandler(
		engine,
		batchScorer,
		advisor,
		tp,
		cfg.Service.BatchLimit,
		cfg.Service.CSVRowLimit,
		kv,
	)

	server := api.NewServer(handler, cfg, tp, log)

	return &HTTPComponents{
		Engine:    engine,
		Handler:   handler,
		Server:    server,
		Telemetry: tp,
	}, nil
}

// loadCatalog compiles the signal catalog, from file when configured.
func loadCatalog(cfg *config.Config, log logger.Logger) (*catalog.Compiled, error) {
	if cfg.Scoring.CatalogPath == "" {
		log.Info("Using built-in signal catalog")
		return catalog.Compile(catalog.Default())
	}

	cat, err := catalog.LoadFile(cfg.Scoring.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load signal catalog: %w", err)
	}
	log.Info("Signal catalog loaded", logger.String("path", cfg.Scoring.CatalogPath))

	compiled, err := catalog.Compile(cat)
	if err != nil {
		return nil, fmt.Errorf("compile signal catalog: %w", err)
	}
	return compiled, nil
}

// createAdvisor builds the chat advisor. Without an API key the advisor
// stays constructed but disabled, so suggestion endpoints keep working.
func createAdvisor(cfg *config.Config, kv *logging.Adapter, tp *telemetry.Provider, log logger.Logger) *chat.Advisor {
	var gen chat.Generator
	if cfg.Chat.Enabled() {
		gen = chat.NewAnthropicGenerator(cfg.Chat.APIKey, cfg.Chat.Model, cfg.Chat.MaxTokens)
		log.Info("Chat advisor enabled", logger.String("model", cfg.Chat.Model))
	} else {
		log.Info("Chat advisor disabled: no API key configured")
	}
	return chat.NewAdvisor(gen, cfg.Chat.RequestsPerMinute, kv, tp)
}
