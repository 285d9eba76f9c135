// Package scoring implements deterministic lead scoring: weighted keyword
// matching, role and company size evaluation, urgency, budget, and scale
// detection, aggregated into a 0-100 score with a priority bucket and a
// short justification.
package scoring

import (
	"fmt"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/catalog"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
)

const (
	// Detector scoring constants
	urgencyPatternScore = 10
	maxUrgencyScore     = 25
	budgetPatternScore  = 15
	maxBudgetScore      = 20

	// Scale thresholds and awards
	scaleEnterpriseThreshold  = 500
	scaleMidMarketThreshold   = 100
	scaleSmallMediumThreshold = 50
	scaleEnterpriseScore      = 15
	scaleMidMarketScore       = 10
	scaleSmallMediumScore     = 5

	// Company size category floors (on the multiplier)
	enterpriseMultiplierFloor = 1.4
	midMarketMultiplierFloor  = 1.0
)

// unknownScale is the scale description when no quantity is found.
const unknownScale = "Unknown scale"

// KeywordScorer sums the weights of catalog terms found in a message.
type KeywordScorer struct {
	compiled *catalog.Compiled
}

// NewKeywordScorer creates a keyword scorer over a compiled catalog.
func NewKeywordScorer(compiled *catalog.Compiled) *KeywordScorer {
	return &KeywordScorer{compiled: compiled}
}

// Score returns the keyword sub-score and an annotated token per matched
// term, e.g. "+15 (urgent)" or "-30 (student)". Each term counts once
// regardless of repetition.
func (k *KeywordScorer) Score(message string) (int, []string) {
	hits := k.compiled.MatchKeywords(message)
	if len(hits) == 0 {
		return 0, nil
	}

	score := 0
	matched := make([]string, 0, len(hits))
	for _, hit := range hits {
		score += hit.Weight
		matched = append(matched, formatToken(hit))
	}
	return score, matched
}

func formatToken(hit catalog.KeywordHit) string {
	if hit.Weight >= 0 {
		return fmt.Sprintf("+%d (%s)", hit.Weight, hit.Term)
	}
	return fmt.Sprintf("%d (%s)", hit.Weight, hit.Term)
}

// RoleScorer maps a job title to a tier score and label.
type RoleScorer struct {
	compiled *catalog.Compiled
}

// NewRoleScorer creates a role scorer over a compiled catalog.
func NewRoleScorer(compiled *catalog.Compiled) *RoleScorer {
	return &RoleScorer{compiled: compiled}
}

// Score returns the role sub-score and tier label. Unmatched titles get
// the catalog's default tier.
func (r *RoleScorer) Score(role string) (int, string) {
	return r.compiled.MatchRole(role)
}

// SizeScorer maps a company size range to a multiplier and category.
type SizeScorer struct {
	compiled *catalog.Compiled
}

// NewSizeScorer creates a size scorer over a compiled catalog.
func NewSizeScorer(compiled *catalog.Compiled) *SizeScorer {
	return &SizeScorer{compiled: compiled}
}

// Multiplier returns the score multiplier and the size category derived
// from it. Unknown ranges get the neutral multiplier.
func (s *SizeScorer) Multiplier(companySize string) (float64, string) {
	mult := s.compiled.Multiplier(companySize)
	return mult, SizeCategoryFor(mult)
}

// SizeCategoryFor maps a size multiplier to its market category label.
func SizeCategoryFor(multiplier float64) string {
	switch {
	case multiplier >= enterpriseMultiplierFloor:
		return domain.SizeEnterprise
	case multiplier >= midMarketMultiplierFloor:
		return domain.SizeMidMarket
	default:
		return domain.SizeSmallBusiness
	}
}

// UrgencyDetector scores time pressure signals in a message.
type UrgencyDetector struct {
	compiled *catalog.Compiled
}

// NewUrgencyDetector creates an urgency detector over a compiled catalog.
func NewUrgencyDetector(compiled *catalog.Compiled) *UrgencyDetector {
	return &UrgencyDetector{compiled: compiled}
}

// Detect returns the urgency sub-score, capped, and whether any urgency
// pattern matched.
func (u *UrgencyDetector) Detect(message string) (int, bool) {
	n := u.compiled.UrgencyMatches(message)
	if n == 0 {
		return 0, false
	}
	return min(n*urgencyPatternScore, maxUrgencyScore), true
}

// BudgetDetector scores financial readiness signals in a message.
type BudgetDetector struct {
	compiled *catalog.Compiled
}

// NewBudgetDetector creates a budget detector over a compiled catalog.
func NewBudgetDetector(compiled *catalog.Compiled) *BudgetDetector {
	return &BudgetDetector{compiled: compiled}
}

// Detect returns the budget sub-score, capped, and whether any budget
// pattern matched.
func (b *BudgetDetector) Detect(message string) (int, bool) {
	n := b.compiled.BudgetMatches(message)
	if n == 0 {
		return 0, false
	}
	return min(n*budgetPatternScore, maxBudgetScore), true
}

// ScaleDetector scores deployment size mentions such as "500+ users".
type ScaleDetector struct {
	compiled *catalog.Compiled
}

// NewScaleDetector creates a scale detector over a compiled catalog.
func NewScaleDetector(compiled *catalog.Compiled) *ScaleDetector {
	return &ScaleDetector{compiled: compiled}
}

// Detect returns the scale sub-score and a description of the detected
// scale. Only the first matching pattern family counts; quantities below
// the smallest threshold score zero but still stop the search.
func (s *ScaleDetector) Detect(message string) (int, string) {
	hit, ok := s.compiled.MatchScale(message)
	if !ok {
		return 0, unknownScale
	}

	switch {
	case hit.Quantity >= scaleEnterpriseThreshold:
		return scaleEnterpriseScore, fmt.Sprintf("Enterprise scale (%d+ %s)", hit.Quantity, hit.Unit)
	case hit.Quantity >= scaleMidMarketThreshold:
		return scaleMidMarketScore, fmt.Sprintf("Mid-market scale (%d+ %s)", hit.Quantity, hit.Unit)
	case hit.Quantity >= scaleSmallMediumThreshold:
		return scaleSmallMediumScore, fmt.Sprintf("Small-medium scale (%d+ %s)", hit.Quantity, hit.Unit)
	default:
		return 0, unknownScale
	}
}
