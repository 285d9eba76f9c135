// Package telemetry provides OpenTelemetry instrumentation for the lead
// scoring service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "lead-scorer"

// Metrics holds all scoring Prometheus metrics
type Metrics struct {
	// Scoring metrics
	LeadsScored     *prometheus.CounterVec
	LeadsFailed     *prometheus.CounterVec
	ScoringDuration prometheus.Histogram
	ScoreValue      prometheus.Histogram
	BatchSize       prometheus.Histogram

	// Signal distribution
	PriorityTotal *prometheus.CounterVec
	UrgentLeads   prometheus.Counter
	BudgetLeads   prometheus.Counter

	// Worker pool metrics
	ActiveWorkers prometheus.Gauge
	QueueDepth    prometheus.Gauge

	// CSV import metrics
	CSVRowsImported prometheus.Counter
	CSVRowsRejected *prometheus.CounterVec

	// Chat advisor metrics
	ChatRequests *prometheus.CounterVec
	ChatDuration prometheus.Histogram
	ChatThrottle prometheus.Counter
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initScoringMetrics(m)
	initSignalMetrics(m)
	initWorkerMetrics(m)
	initImportMetrics(m)
	initChatMetrics(m)
	return m
}

func initScoringMetrics(m *Metrics) {
	m.LeadsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorer_leads_scored_total",
		Help: "Total leads successfully scored",
	}, []string{"source"})

	m.LeadsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorer_leads_failed_total",
		Help: "Total leads that failed scoring",
	}, []string{"source", "error_code"})

	m.ScoringDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scorer_scoring_duration_seconds",
		Help:    "Time to score a single lead",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.ScoreValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scorer_score_value",
		Help:    "Distribution of final lead scores",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scorer_batch_size",
		Help:    "Number of leads per batch request",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})
}

func initSignalMetrics(m *Metrics) {
	m.PriorityTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorer_priority_total",
		Help: "Total leads by assigned priority bucket",
	}, []string{"priority"})

	m.UrgentLeads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scorer_urgent_leads_total",
		Help: "Total leads with urgency signals detected",
	})

	m.BudgetLeads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scorer_budget_leads_total",
		Help: "Total leads with budget signals detected",
	})
}

func initWorkerMetrics(m *Metrics) {
	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scorer_active_workers",
		Help: "Currently active worker goroutines",
	})

	m.QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scorer_queue_depth",
		Help: "Current pending leads in work queue",
	})
}

func initImportMetrics(m *Metrics) {
	m.CSVRowsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scorer_csv_rows_imported_total",
		Help: "Total CSV rows parsed into leads",
	})

	m.CSVRowsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorer_csv_rows_rejected_total",
		Help: "Total CSV rows rejected during import",
	}, []string{"reason"})
}

func initChatMetrics(m *Metrics) {
	m.ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorer_chat_requests_total",
		Help: "Total chat advisor requests",
	}, []string{"status"})

	m.ChatDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scorer_chat_duration_seconds",
		Help:    "Time to answer a chat advisor request",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	m.ChatThrottle = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scorer_chat_throttled_total",
		Help: "Chat requests delayed or rejected by the rate limiter",
	})
}

// RecordScore records metrics for a single scored lead
func (p *Provider) RecordScore(ctx context.Context, source, priority string, score int, urgent, budget bool, duration time.Duration) {
	p.Metrics.LeadsScored.WithLabelValues(source).Inc()
	p.Metrics.ScoringDuration.Observe(duration.Seconds())
	p.Metrics.ScoreValue.Observe(float64(score))
	p.Metrics.PriorityTotal.WithLabelValues(priority).Inc()
	if urgent {
		p.Metrics.UrgentLeads.Inc()
	}
	if budget {
		p.Metrics.BudgetLeads.Inc()
	}
}

// RecordScoreFailure records a failed scoring attempt with error code
func (p *Provider) RecordScoreFailure(ctx context.Context, source, errorCode string) {
	p.Metrics.LeadsFailed.WithLabelValues(source, errorCode).Inc()
}

// RecordBatchSize records the size of a processed batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordCSVImport records accepted and rejected row counts for one import
func (p *Provider) RecordCSVImport(accepted int, rejected map[string]int) {
	p.Metrics.CSVRowsImported.Add(float64(accepted))
	for reason, n := range rejected {
		p.Metrics.CSVRowsRejected.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordChat records a chat advisor round trip
func (p *Provider) RecordChat(status string, duration time.Duration) {
	p.Metrics.ChatRequests.WithLabelValues(status).Inc()
	p.Metrics.ChatDuration.Observe(duration.Seconds())
}

// IncrementChatThrottle increments the chat throttle counter
func (p *Provider) IncrementChatThrottle() {
	p.Metrics.ChatThrottle.Inc()
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// SetQueueDepth sets the current queue depth
func (p *Provider) SetQueueDepth(depth int) {
	p.Metrics.QueueDepth.Set(float64(depth))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
