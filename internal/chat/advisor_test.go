package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logging"
)

type stubGenerator struct {
	lastPrompt string
	answer     string
	err        error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func testLeads(n int) []*domain.ScoredLead {
	leads := make([]*domain.ScoredLead, n)
	for i := range leads {
		leads[i] = &domain.ScoredLead{
			Lead: domain.LeadInput{
				Name:    fmt.Sprintf("Lead %d", i),
				Company: fmt.Sprintf("Company %d", i),
				Role:    "Manager",
				Email:   fmt.Sprintf("lead%d@example.com", i),
			},
			Score:         (i * 7) % 101,
			Justification: "Decision maker role",
		}
	}
	return leads
}

func newTestAdvisor(gen Generator, rpm int) *Advisor {
	return NewAdvisor(gen, rpm, logging.NewAdapter(logger.NewNop()), nil)
}

func TestAskWithoutBackend(t *testing.T) {
	advisor := newTestAdvisor(nil, 0)

	_, err := advisor.Ask(context.Background(), "who are my top leads?", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, advisor.Enabled())
}

func TestAskBuildsLeadPrompt(t *testing.T) {
	gen := &stubGenerator{answer: "Reach out to Lead 14 first."}
	advisor := newTestAdvisor(gen, 0)

	answer, err := advisor.Ask(context.Background(), "Who should I contact first?", testLeads(20))
	require.NoError(t, err)
	assert.Equal(t, "Reach out to Lead 14 first.", answer)

	assert.Contains(t, gen.lastPrompt, "You have analyzed 20 leads")
	assert.Contains(t, gen.lastPrompt, "TOP 10 HIGHEST-SCORING LEADS:")
	assert.Contains(t, gen.lastPrompt, "LOWEST-SCORING 5 LEADS:")
	assert.Contains(t, gen.lastPrompt, "QUESTION: Who should I contact first?")
}

func TestAskSmallDatasetOmitsBottomSection(t *testing.T) {
	gen := &stubGenerator{answer: "ok"}
	advisor := newTestAdvisor(gen, 0)

	_, err := advisor.Ask(context.Background(), "show me my leads", testLeads(5))
	require.NoError(t, err)
	assert.NotContains(t, gen.lastPrompt, "LOWEST-SCORING")
}

func TestAskCasualQuestionUsesCasualPrompt(t *testing.T) {
	gen := &stubGenerator{answer: "Hi there!"}
	advisor := newTestAdvisor(gen, 0)

	_, err := advisor.Ask(context.Background(), "hello!", testLeads(3))
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "The user said: hello!")
	assert.NotContains(t, gen.lastPrompt, "TOP 10")
}

func TestAskPropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	advisor := newTestAdvisor(gen, 0)

	_, err := advisor.Ask(context.Background(), "top leads?", testLeads(2))
	assert.Error(t, err)
}

func TestAskRateLimit(t *testing.T) {
	gen := &stubGenerator{answer: "ok"}
	advisor := newTestAdvisor(gen, 1)

	_, err := advisor.Ask(context.Background(), "top leads?", nil)
	require.NoError(t, err)

	_, err = advisor.Ask(context.Background(), "top leads?", nil)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestIsLeadQuestion(t *testing.T) {
	assert.True(t, IsLeadQuestion("Who are my top leads?"))
	assert.True(t, IsLeadQuestion("does anyone have BUDGET approval"))
	assert.False(t, IsLeadQuestion("good morning"))
	assert.False(t, IsLeadQuestion(""))
}

func TestSuggestionsEmptyData(t *testing.T) {
	advisor := newTestAdvisor(nil, 0)

	got := advisor.Suggestions(nil)
	assert.Equal(t, []string{"How do I get started?", "What can you help me with?"}, got)
}

func TestSuggestionsWithHighPriorityLeads(t *testing.T) {
	advisor := newTestAdvisor(nil, 0)

	leads := []*domain.ScoredLead{
		{Score: 95},
		{Score: 85},
		{Score: 30},
	}

	got := advisor.Suggestions(leads)
	require.Len(t, got, maxSuggestions)
	assert.Equal(t, "Tell me about the 2 high priority leads", got[0])
}

func TestSuggestionsWithoutHighPriorityLeads(t *testing.T) {
	advisor := newTestAdvisor(nil, 0)

	got := advisor.Suggestions([]*domain.ScoredLead{{Score: 50}})
	require.Len(t, got, maxSuggestions)
	assert.Equal(t, "Who are the top 5 leads I should contact?", got[0])
}
