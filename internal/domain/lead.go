// Package domain contains the core types shared across the lead scoring service.
package domain

import "time"

// Priority labels assigned from the final score.
const (
	PriorityHigh = "High Priority"
	PriorityMed  = "Medium Priority"
	PriorityLow  = "Low Priority"
	PriorityJunk = "Junk/Error"
)

// Role tier labels.
const (
	TierExecutive     = "Executive"
	TierDecisionMaker = "Decision Maker"
	TierStandard      = "Standard"
)

// Company size categories.
const (
	SizeEnterprise    = "Enterprise"
	SizeMidMarket     = "Mid-Market"
	SizeSmallBusiness = "Small Business"
)

// LeadInput is a single lead submitted for scoring.
type LeadInput struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Company     string `json:"company,omitempty"`
	Role        string `json:"role"`
	CompanySize string `json:"company_size"`
	Message     string `json:"message"`
}

// SignalEvidence records the contribution of one detector to a lead's score.
type SignalEvidence struct {
	Component     string   `json:"component"`
	SubScore      int      `json:"sub_score"`
	MatchedTokens []string `json:"matched_tokens,omitempty"`
	// Detail carries a detector-specific label, such as the role tier,
	// size category, or scale description.
	Detail string `json:"detail,omitempty"`
}

// ScoreBreakdown holds the per-detector sub-scores before aggregation.
type ScoreBreakdown struct {
	BaseScore      int              `json:"base_score"`
	KeywordScore   int              `json:"keyword_score"`
	RoleScore      int              `json:"role_score"`
	UrgencyScore   int              `json:"urgency_score"`
	BudgetScore    int              `json:"budget_score"`
	ScaleScore     int              `json:"scale_score"`
	SizeMultiplier float64          `json:"size_multiplier"`
	RoleTier       string           `json:"role_tier"`
	SizeCategory   string           `json:"size_category"`
	ScaleDetail    string           `json:"scale_detail,omitempty"`
	IsUrgent       bool             `json:"is_urgent"`
	HasBudget      bool             `json:"has_budget"`
	Evidence       []SignalEvidence `json:"evidence,omitempty"`
}

// ScoredLead is the full scoring result for one lead.
type ScoredLead struct {
	Lead          LeadInput      `json:"lead"`
	Score         int            `json:"score"`
	Priority      string         `json:"priority"`
	Justification string         `json:"justification"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
	ScoredAt      time.Time      `json:"scored_at"`
}
