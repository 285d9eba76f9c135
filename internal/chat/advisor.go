// Package chat answers natural-language questions about scored leads using
// a text generation backend.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logging"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/telemetry"
)

// Advisor errors.
var (
	// ErrUnavailable means no generation backend is configured.
	ErrUnavailable = errors.New("chat advisor is not configured")
	// ErrRateLimited means the advisor is receiving questions too quickly.
	ErrRateLimited = errors.New("chat advisor rate limit exceeded")
)

const (
	promptTopLeads    = 10
	promptBottomLeads = 5
	maxSuggestions    = 8
)

// Generator produces a completion for a prompt. Implementations wrap a
// concrete model API.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor turns questions about scored leads into prompts and returns the
// generated answers. Calls are rate limited.
type Advisor struct {
	gen       Generator
	limiter   *rate.Limiter
	logger    logging.Logger
	telemetry *telemetry.Provider
}

// NewAdvisor creates an advisor. gen may be nil, in which case every Ask
// returns ErrUnavailable. requestsPerMinute <= 0 disables rate limiting.
func NewAdvisor(gen Generator, requestsPerMinute int, log logging.Logger, tp *telemetry.Provider) *Advisor {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	}

	return &Advisor{
		gen:       gen,
		limiter:   limiter,
		logger:    log,
		telemetry: tp,
	}
}

// Enabled reports whether a generation backend is wired.
func (a *Advisor) Enabled() bool {
	return a.gen != nil
}

// Ask answers a question in the context of the given scored leads. Lead
// questions get the full data prompt; anything else gets a casual reply
// prompt that steers the user back to their leads.
func (a *Advisor) Ask(ctx context.Context, question string, leads []*domain.ScoredLead) (string, error) {
	if a.gen == nil {
		return "", ErrUnavailable
	}

	if a.limiter != nil && !a.limiter.Allow() {
		if a.telemetry != nil {
			a.telemetry.IncrementChatThrottle()
		}
		return "", ErrRateLimited
	}

	start := time.Now()
	var prompt string
	if IsLeadQuestion(question) {
		prompt = buildLeadPrompt(question, leads)
	} else {
		prompt = buildCasualPrompt(question, len(leads))
	}

	answer, err := a.gen.Generate(ctx, prompt)
	status := "ok"
	if err != nil {
		status = "error"
	}
	if a.telemetry != nil {
		a.telemetry.RecordChat(status, time.Since(start))
	}
	if err != nil {
		a.logger.Error("chat generation failed", "error", err)
		return "", fmt.Errorf("generate answer: %w", err)
	}

	a.logger.Debug("chat question answered",
		"lead_count", len(leads),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(answer), nil
}

// Suggestions returns starter questions tailored to the data at hand.
func (a *Advisor) Suggestions(leads []*domain.ScoredLead) []string {
	if len(leads) == 0 {
		return []string{
			"How do I get started?",
			"What can you help me with?",
		}
	}

	highPriority := 0
	for _, lead := range leads {
		if lead.Score >= 80 {
			highPriority++
		}
	}

	suggestions := []string{
		"Who are the top 5 leads I should contact?",
		"Show me all high priority leads",
		"What patterns do you see in high-scoring leads?",
		"Which companies have urgent needs?",
		"Who has budget approval?",
		"What industries are represented in top leads?",
		"Compare high vs medium priority leads",
		"Give me contact details for top 3 leads",
	}

	if highPriority > 0 {
		suggestions = append([]string{
			fmt.Sprintf("Tell me about the %d high priority leads", highPriority),
		}, suggestions...)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// leadKeywords marks a question as being about lead data rather than
// casual conversation.
var leadKeywords = []string{
	"lead", "leads", "score", "priority", "contact", "call", "email",
	"company", "companies", "customer", "prospect", "sales",
	"top", "best", "highest", "lowest", "budget", "urgent",
	"who", "which", "what", "show", "list", "tell me about",
	"recommend", "prioritize", "focus", "crm", "deal",
}

// IsLeadQuestion reports whether a question is about lead data.
func IsLeadQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range leadKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// buildLeadPrompt assembles the data-grounded prompt: priority counts, the
// ten highest-scoring leads with justifications, and the five lowest.
func buildLeadPrompt(question string, leads []*domain.ScoredLead) string {
	high, med, low := 0, 0, 0
	for _, lead := range leads {
		switch {
		case lead.Score >= 80:
			high++
		case lead.Score >= 40:
			med++
		case lead.Score >= 1:
			low++
		}
	}

	sorted := make([]*domain.ScoredLead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	top := sorted
	if len(top) > promptTopLeads {
		top = sorted[:promptTopLeads]
	}

	var bottom []*domain.ScoredLead
	if len(sorted) > promptTopLeads {
		bottom = sorted[len(sorted)-promptBottomLeads:]
	}

	var sb strings.Builder
	sb.WriteString("You are a helpful AI Sales Assistant. A sales team member is asking you about their leads.\n\n")
	fmt.Fprintf(&sb, "CONTEXT - You have analyzed %d leads:\n", len(leads))
	fmt.Fprintf(&sb, "- %d High Priority leads (scores 80-100)\n", high)
	fmt.Fprintf(&sb, "- %d Medium Priority leads (scores 40-79)\n", med)
	fmt.Fprintf(&sb, "- %d Low Priority leads (scores 1-39)\n\n", low)

	sb.WriteString("TOP 10 HIGHEST-SCORING LEADS:")
	for i, lead := range top {
		writeLeadLine(&sb, i+1, lead)
		if lead.Justification != "" {
			fmt.Fprintf(&sb, "\n   Why: %s", lead.Justification)
		}
	}
	sb.WriteString("\n")

	if len(bottom) > 0 {
		sb.WriteString("\nLOWEST-SCORING 5 LEADS:")
		for i, lead := range bottom {
			writeLeadLine(&sb, i+1, lead)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nQUESTION: %s\n\n", question)
	sb.WriteString(`INSTRUCTIONS - YOU MUST FOLLOW EXACTLY:
1. Write your answer as a CONVERSATIONAL PARAGRAPH, like you're talking to a friend
2. DO NOT use lists, bullet points, numbered items, or structured formats
3. DO NOT use quotation marks around field values
4. Write full sentences that flow naturally
5. Include names, titles, companies, and emails IN the sentences naturally

Now write your answer as a natural, flowing paragraph:`)

	return sb.String()
}

func writeLeadLine(sb *strings.Builder, rank int, lead *domain.ScoredLead) {
	fmt.Fprintf(sb, "\n%d. %s from %s - %s - Score: %d/100 - Email: %s",
		rank,
		orNA(lead.Lead.Name),
		orNA(lead.Lead.Company),
		orNA(lead.Lead.Role),
		lead.Score,
		orNA(lead.Lead.Email),
	)
}

func buildCasualPrompt(question string, leadCount int) string {
	var sb strings.Builder
	sb.WriteString("You are a friendly AI Sales Assistant for a lead scoring tool.\n")
	fmt.Fprintf(&sb, "The user currently has %d scored leads loaded.\n\n", leadCount)
	fmt.Fprintf(&sb, "The user said: %s\n\n", question)
	sb.WriteString("Reply warmly in one or two sentences, and remind them you can answer questions about their leads, scores, and priorities.")
	return sb.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
