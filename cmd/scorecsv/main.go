// The scorecsv command scores a lead CSV offline and writes the scored
// rows, with score, priority_label, and justification columns appended,
// to stdout or a file. It uses the same catalog and engine as the HTTP
// service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/bootstrap"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/catalog"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/leadio"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logging"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/processor"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/scoring"
)

func main() {
	input := flag.String("in", "", "input CSV path (default stdin)")
	output := flag.String("out", "", "output CSV path (default stdout)")
	catalogPath := flag.String("catalog", "", "signal catalog YAML (default built-in)")
	concurrency := flag.Int("concurrency", 0, "worker count (default from config)")
	flag.Parse()

	if err := run(*input, *output, *catalogPath, *concurrency); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run(input, output, catalogPath string, concurrency int) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.Scoring.CatalogPath = catalogPath
	}
	if concurrency > 0 {
		cfg.Service.Concurrency = concurrency
	}

	logr, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = logr.Sync()
	}()

	compiled, err := loadCatalog(cfg.Scoring.CatalogPath)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(input)
	if err != nil {
		return err
	}
	defer closeIn()

	imported, err := leadio.ImportLeads(in, cfg.Service.CSVRowLimit)
	if err != nil {
		return fmt.Errorf("import leads: %w", err)
	}
	for _, rejected := range imported.Rejected {
		logr.Warn("Row rejected",
			logger.Int("line", rejected.Line),
			logger.String("reason", rejected.Reason),
		)
	}

	engine := scoring.NewEngine(compiled, logr, nil)
	batchScorer := processor.NewBatchScorer(engine, cfg.Service.Concurrency, logging.NewAdapter(logr), nil)

	results, err := batchScorer.Score(context.Background(), imported.Leads)
	if err != nil {
		return fmt.Errorf("score leads: %w", err)
	}

	out, closeOut, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := leadio.ExportScored(out, results); err != nil {
		return fmt.Errorf("write scored csv: %w", err)
	}

	logr.Info("Scoring complete",
		logger.Int("scored", len(results)),
		logger.Int("rejected", len(imported.Rejected)),
	)
	return nil
}

func loadCatalog(path string) (*catalog.Compiled, error) {
	if path == "" {
		return catalog.Compile(catalog.Default())
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load signal catalog: %w", err)
	}
	return catalog.Compile(cat)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
