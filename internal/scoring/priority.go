package scoring

import "github.com/EtyalaRahul/hackthon-project-shs/internal/domain"

const (
	highPriorityThreshold   = 80
	mediumPriorityThreshold = 40
)

// PriorityFor maps a final score to its priority bucket. A score of zero
// means the lead is junk or carried disqualifying signals.
func PriorityFor(score int) string {
	switch {
	case score >= highPriorityThreshold:
		return domain.PriorityHigh
	case score >= mediumPriorityThreshold:
		return domain.PriorityMed
	case score >= 1:
		return domain.PriorityLow
	default:
		return domain.PriorityJunk
	}
}
