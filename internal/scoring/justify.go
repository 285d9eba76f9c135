package scoring

import (
	"strings"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
)

// maxJustificationFactors caps how many signal phrases are joined.
const maxJustificationFactors = 4

// buildJustification synthesizes a short human-readable reason for a score
// from the strongest signals, in fixed precedence order. When no signal
// fired, a score-band fallback phrase is used.
func buildJustification(score int, b domain.ScoreBreakdown) string {
	parts := make([]string, 0, maxJustificationFactors)

	switch b.RoleTier {
	case domain.TierExecutive:
		parts = append(parts, "C-suite authority")
	case domain.TierDecisionMaker:
		parts = append(parts, "Decision maker role")
	}

	if b.IsUrgent {
		parts = append(parts, "urgent signals")
	}

	if b.HasBudget {
		parts = append(parts, "budget mentioned")
	}

	if strings.Contains(b.ScaleDetail, "Enterprise") {
		parts = append(parts, "enterprise scale")
	} else if strings.Contains(b.ScaleDetail, "Mid-market") {
		parts = append(parts, "mid-market scale")
	}

	if b.SizeCategory == domain.SizeEnterprise {
		parts = append(parts, "large company")
	}

	if len(parts) > 0 {
		if len(parts) > maxJustificationFactors {
			parts = parts[:maxJustificationFactors]
		}
		return strings.Join(parts, ", ")
	}

	switch {
	case score >= mediumPriorityThreshold:
		return "Moderate fit, some positive signals"
	case score >= 1:
		return "Low fit, limited positive signals"
	default:
		return "Poor fit or spam indicators"
	}
}
