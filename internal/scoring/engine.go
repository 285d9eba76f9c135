package scoring

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/catalog"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/telemetry"
)

const (
	minFinalScore = 0
	maxFinalScore = 100
)

// Engine orchestrates all scoring detectors over a compiled signal catalog.
// Scoring is pure rule evaluation: the same input always produces the same
// score.
type Engine struct {
	keywords *KeywordScorer
	role     *RoleScorer
	size     *SizeScorer
	urgency  *UrgencyDetector
	budget   *BudgetDetector
	scale    *ScaleDetector

	compiled  *catalog.Compiled
	baseScore int
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewEngine creates an engine with all detectors. The telemetry provider
// may be nil.
func NewEngine(compiled *catalog.Compiled, log logger.Logger, tp *telemetry.Provider) *Engine {
	return &Engine{
		keywords:  NewKeywordScorer(compiled),
		role:      NewRoleScorer(compiled),
		size:      NewSizeScorer(compiled),
		urgency:   NewUrgencyDetector(compiled),
		budget:    NewBudgetDetector(compiled),
		scale:     NewScaleDetector(compiled),
		compiled:  compiled,
		baseScore: compiled.Catalog().BaseScore,
		logger:    log,
		telemetry: tp,
	}
}

// Catalog returns the signal catalog the engine was compiled from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.compiled.Catalog()
}

// Score evaluates a single lead. It never fails: empty fields simply
// contribute nothing beyond the defaults.
func (e *Engine) Score(ctx context.Context, in domain.LeadInput) *domain.ScoredLead {
	start := time.Now()

	keywordScore, matched := e.keywords.Score(in.Message)
	roleScore, roleTier := e.role.Score(in.Role)
	multiplier, sizeCategory := e.size.Multiplier(in.CompanySize)
	urgencyScore, isUrgent := e.urgency.Detect(in.Message)
	budgetScore, hasBudget := e.budget.Detect(in.Message)
	scaleScore, scaleDetail := e.scale.Detect(in.Message)

	total := e.baseScore + keywordScore + roleScore + urgencyScore + budgetScore + scaleScore
	final := clampScore(int(math.Round(float64(total) * multiplier)))

	breakdown := domain.ScoreBreakdown{
		BaseScore:      e.baseScore,
		KeywordScore:   keywordScore,
		RoleScore:      roleScore,
		UrgencyScore:   urgencyScore,
		BudgetScore:    budgetScore,
		ScaleScore:     scaleScore,
		SizeMultiplier: multiplier,
		RoleTier:       roleTier,
		SizeCategory:   sizeCategory,
		ScaleDetail:    scaleDetail,
		IsUrgent:       isUrgent,
		HasBudget:      hasBudget,
		Evidence: []domain.SignalEvidence{
			{Component: "keywords", SubScore: keywordScore, MatchedTokens: matched},
			{Component: "role", SubScore: roleScore, Detail: roleTier},
			{Component: "urgency", SubScore: urgencyScore},
			{Component: "budget", SubScore: budgetScore},
			{Component: "scale", SubScore: scaleScore, Detail: scaleDetail},
			{Component: "company_size", SubScore: 0, Detail: sizeCategory},
		},
	}

	priority := PriorityFor(final)
	result := &domain.ScoredLead{
		Lead:          in,
		Score:         final,
		Priority:      priority,
		Justification: buildJustification(final, breakdown),
		Breakdown:     breakdown,
		ScoredAt:      time.Now().UTC(),
	}

	if e.logger != nil {
		e.logger.Debug("lead scored",
			logger.String("lead_id", in.ID),
			logger.Int("score", final),
			logger.String("priority", priority),
			logger.Duration("duration", time.Since(start)))
	}

	return result
}

// ScoreTraced is Score wrapped in a trace span, for request paths where a
// telemetry provider is wired.
func (e *Engine) ScoreTraced(ctx context.Context, in domain.LeadInput) *domain.ScoredLead {
	if e.telemetry == nil {
		return e.Score(ctx, in)
	}

	ctx, span := e.telemetry.StartSpan(ctx, "scoring.Score",
		attribute.String("lead.id", in.ID),
		attribute.String("lead.company_size", in.CompanySize))
	defer span.End()

	result := e.Score(ctx, in)
	span.SetAttributes(
		attribute.Int("lead.score", result.Score),
		attribute.String("lead.priority", result.Priority))
	return result
}

func clampScore(score int) int {
	if score < minFinalScore {
		return minFinalScore
	}
	if score > maxFinalScore {
		return maxFinalScore
	}
	return score
}
