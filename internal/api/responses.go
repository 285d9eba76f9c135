package api

import (
	"github.com/EtyalaRahul/hackthon-project-shs/internal/catalog"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/leadio"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/scoring"
)

// ScoreRequest represents a single lead scoring request.
type ScoreRequest struct {
	Lead *domain.LeadInput `json:"lead" binding:"required"`
}

// ScoreResponse represents a single lead scoring response.
type ScoreResponse struct {
	Result *domain.ScoredLead `json:"result"`
}

// BatchScoreRequest represents a batch scoring request.
type BatchScoreRequest struct {
	Leads []domain.LeadInput `json:"leads" binding:"required,min=1"`
}

// BatchScoreResponse represents a batch scoring response.
type BatchScoreResponse struct {
	Results []*domain.ScoredLead `json:"results"`
	Total   int                  `json:"total"`
	Success int                  `json:"success"`
	Failed  int                  `json:"failed"`
}

// CSVScoreResponse is the JSON variant of the CSV scoring response.
type CSVScoreResponse struct {
	Results  []*domain.ScoredLead `json:"results"`
	Imported int                  `json:"imported"`
	Rejected []leadio.RowError    `json:"rejected,omitempty"`
}

// ChatRequest represents a lead advisor chat request. Scored leads are
// carried by the caller so the service stays stateless.
type ChatRequest struct {
	Question string               `json:"question" binding:"required"`
	Leads    []*domain.ScoredLead `json:"leads"`
}

// ChatResponse represents a lead advisor chat response.
type ChatResponse struct {
	Answer       string `json:"answer"`
	LeadRelated  bool   `json:"lead_related"`
	LeadsFetched int    `json:"leads_fetched"`
}

// SuggestionsRequest represents a request for chat starter questions.
type SuggestionsRequest struct {
	Leads []*domain.ScoredLead `json:"leads"`
}

// SuggestionsResponse carries chat starter questions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SizeBandResponse summarizes one company size band for the dashboard.
type SizeBandResponse struct {
	Range      string  `json:"range"`
	Multiplier float64 `json:"multiplier"`
	Category   string  `json:"category"`
}

// CatalogResponse is a read-only summary of the signal catalog.
type CatalogResponse struct {
	BaseScore        int                `json:"base_score"`
	PositiveKeywords int                `json:"positive_keywords"`
	NegativeKeywords int                `json:"negative_keywords"`
	RoleTiers        int                `json:"role_tiers"`
	UrgencyPatterns  int                `json:"urgency_patterns"`
	BudgetPatterns   int                `json:"budget_patterns"`
	ScalePatterns    int                `json:"scale_patterns"`
	SizeBands        []SizeBandResponse `json:"size_bands"`
}

// toCatalogResponse converts a signal catalog to its API summary.
func toCatalogResponse(cat *catalog.Catalog) CatalogResponse {
	positive := len(cat.HighKeywords) + len(cat.MediumKeywords)
	negative := len(cat.NegativeKeywords)

	bands := make([]SizeBandResponse, len(cat.SizeBands))
	for i, band := range cat.SizeBands {
		bands[i] = SizeBandResponse{
			Range:      band.Range,
			Multiplier: band.Multiplier,
			Category:   scoring.SizeCategoryFor(band.Multiplier),
		}
	}

	return CatalogResponse{
		BaseScore:        cat.BaseScore,
		PositiveKeywords: positive,
		NegativeKeywords: negative,
		RoleTiers:        len(cat.RoleTiers),
		UrgencyPatterns:  len(cat.UrgencyPatterns),
		BudgetPatterns:   len(cat.BudgetPatterns),
		ScalePatterns:    len(cat.ScalePatterns),
		SizeBands:        bands,
	}
}
