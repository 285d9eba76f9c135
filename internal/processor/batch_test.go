package processor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/catalog"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/scoring"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestScorer(t *testing.T, concurrency int) *BatchScorer {
	t.Helper()
	compiled, err := catalog.Compile(catalog.Default())
	require.NoError(t, err)
	engine := scoring.NewEngine(compiled, logger.NewNop(), nil)
	return NewBatchScorer(engine, concurrency, &mockLogger{}, nil)
}

func TestBatchScorePreservesOrder(t *testing.T) {
	scorer := newTestScorer(t, 4)

	leads := make([]domain.LeadInput, 50)
	for i := range leads {
		leads[i] = domain.LeadInput{
			ID:      fmt.Sprintf("lead-%d", i),
			Role:    "Manager",
			Message: "interested in a demo",
		}
	}

	results, err := scorer.Score(context.Background(), leads)
	require.NoError(t, err)
	require.Len(t, results, len(leads))

	for i, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, leads[i].ID, r.Lead.ID)
	}
}

func TestBatchScoreMatchesSingleScoring(t *testing.T) {
	compiled, err := catalog.Compile(catalog.Default())
	require.NoError(t, err)
	engine := scoring.NewEngine(compiled, logger.NewNop(), nil)
	scorer := NewBatchScorer(engine, 8, &mockLogger{}, nil)

	leads := []domain.LeadInput{
		{Role: "CTO", CompanySize: "1000+", Message: "urgent migration, budget approved, 500+ users"},
		{Role: "Student", CompanySize: "1-10", Message: "free access for my thesis"},
		{Role: "Manager", CompanySize: "50-200", Message: "interested in a demo"},
	}

	results, err := scorer.Score(context.Background(), leads)
	require.NoError(t, err)

	for i, lead := range leads {
		single := engine.Score(context.Background(), lead)
		assert.Equal(t, single.Score, results[i].Score)
		assert.Equal(t, single.Priority, results[i].Priority)
	}
}

func TestBatchScoreEmptyInput(t *testing.T) {
	scorer := newTestScorer(t, 4)

	results, err := scorer.Score(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBatchScoreCancelledContext(t *testing.T) {
	scorer := newTestScorer(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	leads := make([]domain.LeadInput, 100)
	_, err := scorer.Score(ctx, leads)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBatchScorerDefaultsConcurrency(t *testing.T) {
	scorer := newTestScorer(t, 0)
	assert.Equal(t, defaultConcurrency, scorer.Concurrency())
}
