// Package processor provides parallel batch scoring over a worker pool.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/scoring"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/telemetry"
)

// defaultConcurrency is used when no worker count is configured.
const defaultConcurrency = 10

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// BatchScorer scores multiple leads in parallel using a worker pool.
// Results keep the order of the input slice.
type BatchScorer struct {
	engine      *scoring.Engine
	concurrency int
	logger      Logger
	telemetry   *telemetry.Provider
}

// NewBatchScorer creates a new batch scorer. The telemetry provider may be nil.
func NewBatchScorer(engine *scoring.Engine, concurrency int, logger Logger, tp *telemetry.Provider) *BatchScorer {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &BatchScorer{
		engine:      engine,
		concurrency: concurrency,
		logger:      logger,
		telemetry:   tp,
	}
}

type job struct {
	index int
	lead  domain.LeadInput
}

// Score scores a batch of leads using the worker pool. The returned slice
// is positionally aligned with the input. Returns the context error if the
// batch was cancelled before completion.
func (b *BatchScorer) Score(ctx context.Context, leads []domain.LeadInput) ([]*domain.ScoredLead, error) {
	if len(leads) == 0 {
		return []*domain.ScoredLead{}, nil
	}

	b.logger.Info("Starting batch scoring",
		"batch_size", len(leads),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	workers := min(b.concurrency, len(leads))
	if b.telemetry != nil {
		b.telemetry.RecordBatchSize(len(leads))
		b.telemetry.SetQueueDepth(len(leads))
		b.telemetry.SetActiveWorkers(workers)
		defer func() {
			b.telemetry.SetQueueDepth(0)
			b.telemetry.SetActiveWorkers(0)
		}()
	}

	jobs := make(chan job, len(leads))
	results := make([]*domain.ScoredLead, len(leads))

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go b.worker(ctx, i, jobs, results, &wg)
	}

	for i, lead := range leads {
		jobs <- job{index: i, lead: lead}
	}
	close(jobs)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		b.logger.Warn("Batch scoring cancelled", "error", err)
		return nil, err
	}

	duration := time.Since(startTime)
	b.logger.Info("Batch scoring complete",
		"total", len(leads),
		"duration_ms", duration.Milliseconds(),
		"leads_per_second", float64(len(leads))/duration.Seconds(),
	)

	return results, nil
}

// worker scores jobs into their slot in the results slice. Each index is
// written by exactly one worker.
func (b *BatchScorer) worker(
	ctx context.Context,
	id int,
	jobs <-chan job,
	results []*domain.ScoredLead,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	b.logger.Debug("Worker started", "worker_id", id)

	for j := range jobs {
		select {
		case <-ctx.Done():
			b.logger.Warn("Worker stopping due to context cancellation", "worker_id", id)
			return
		default:
		}

		results[j.index] = b.engine.Score(ctx, j.lead)
	}

	b.logger.Debug("Worker finished", "worker_id", id)
}

// Concurrency returns the configured worker count.
func (b *BatchScorer) Concurrency() int {
	return b.concurrency
}
