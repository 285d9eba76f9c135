// Package catalog defines the signal catalog that drives lead scoring:
// weighted message keywords, role tiers, company size bands, and the
// regex patterns used for urgency, budget, and scale detection.
package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid signal catalog")

// Keyword is a weighted message term. Weight may be negative for
// disqualifying terms.
type Keyword struct {
	Term   string `yaml:"term"`
	Weight int    `yaml:"weight"`
}

// RoleTier maps a set of title keywords to a tier label and score.
// Tiers are evaluated in order; the first tier containing a matching
// title keyword wins.
type RoleTier struct {
	Label  string   `yaml:"label"`
	Score  int      `yaml:"score"`
	Titles []string `yaml:"titles"`
}

// SizeBand maps a company size range string to a score multiplier.
type SizeBand struct {
	Range      string  `yaml:"range"`
	Multiplier float64 `yaml:"multiplier"`
}

// ScalePattern is a regex with a leading capture group for the quantity,
// tagged with the unit it counts.
type ScalePattern struct {
	Pattern string `yaml:"pattern"`
	Unit    string `yaml:"unit"`
}

// Catalog holds every tunable signal table. The zero value is not usable;
// start from Default or LoadFile.
type Catalog struct {
	BaseScore        int            `yaml:"base_score"`
	HighKeywords     []Keyword      `yaml:"high_keywords"`
	MediumKeywords   []Keyword      `yaml:"medium_keywords"`
	NegativeKeywords []Keyword      `yaml:"negative_keywords"`
	RoleTiers        []RoleTier     `yaml:"role_tiers"`
	DefaultRoleScore int            `yaml:"default_role_score"`
	DefaultRoleTier  string         `yaml:"default_role_tier"`
	SizeBands        []SizeBand     `yaml:"size_bands"`
	UrgencyPatterns  []string       `yaml:"urgency_patterns"`
	BudgetPatterns   []string       `yaml:"budget_patterns"`
	ScalePatterns    []ScalePattern `yaml:"scale_patterns"`
}

// Default returns the built-in signal catalog.
func Default() *Catalog {
	return &Catalog{
		BaseScore: 20,
		HighKeywords: []Keyword{
			{Term: "urgent", Weight: 15},
			{Term: "asap", Weight: 15},
			{Term: "deadline", Weight: 12},
			{Term: "migration", Weight: 10},
			{Term: "immediately", Weight: 12},
			{Term: "critical", Weight: 12},
			{Term: "need now", Weight: 15},
			{Term: "emergency", Weight: 12},
			{Term: "budget allocated", Weight: 15},
			{Term: "budget approved", Weight: 15},
			{Term: "$", Weight: 10},
			{Term: "contract", Weight: 10},
			{Term: "enterprise", Weight: 12},
			{Term: "going bankrupt", Weight: 15},
			{Term: "vendor failing", Weight: 12},
			{Term: "system failing", Weight: 12},
		},
		MediumKeywords: []Keyword{
			{Term: "demo", Weight: 8},
			{Term: "trial", Weight: 7},
			{Term: "pricing", Weight: 6},
			{Term: "information", Weight: 5},
			{Term: "interested", Weight: 7},
			{Term: "looking", Weight: 6},
			{Term: "considering", Weight: 7},
			{Term: "evaluate", Weight: 8},
			{Term: "compare", Weight: 6},
			{Term: "schedule", Weight: 7},
			{Term: "meeting", Weight: 7},
			{Term: "call", Weight: 6},
		},
		NegativeKeywords: []Keyword{
			{Term: "student", Weight: -30},
			{Term: "free", Weight: -15},
			{Term: "school", Weight: -25},
			{Term: "university", Weight: -25},
			{Term: "college", Weight: -25},
			{Term: "homework", Weight: -30},
			{Term: "project", Weight: -10},
			{Term: "thesis", Weight: -25},
			{Term: "research", Weight: -8},
			{Term: "job", Weight: -20},
			{Term: "hiring", Weight: -25},
			{Term: "resume", Weight: -30},
			{Term: "spam", Weight: -40},
			{Term: "click here", Weight: -40},
			{Term: "make money", Weight: -40},
			{Term: "earn", Weight: -25},
		},
		RoleTiers: []RoleTier{
			{
				Label: "Executive",
				Score: 25,
				Titles: []string{
					"cto", "ceo", "cfo", "coo", "vp", "vice president",
					"director", "head of", "chief", "president",
				},
			},
			{
				Label: "Decision Maker",
				Score: 15,
				Titles: []string{
					"manager", "lead", "senior", "principal", "architect",
				},
			},
		},
		DefaultRoleScore: 5,
		DefaultRoleTier:  "Standard",
		SizeBands: []SizeBand{
			{Range: "1-10", Multiplier: 0.5},
			{Range: "10-50", Multiplier: 0.7},
			{Range: "50-200", Multiplier: 1.0},
			{Range: "200-500", Multiplier: 1.2},
			{Range: "500-1000", Multiplier: 1.4},
			{Range: "1000+", Multiplier: 1.5},
		},
		UrgencyPatterns: []string{
			`\d+\s*(day|week|month)s?`,
			`(deadline|due date|expires?)`,
			`(urgent|asap|immediately|critical)`,
			`(need.*now|right away)`,
		},
		BudgetPatterns: []string{
			`\$[\d,]+k?`,
			`budget (allocated|approved|available)`,
			`funding (secured|approved)`,
			`\d+k budget`,
		},
		ScalePatterns: []ScalePattern{
			{Pattern: `(\d+)\+?\s*(users?|employees?|staff|people)`, Unit: "users"},
			{Pattern: `(\d+)\+?\s*(locations?|offices?|sites?)`, Unit: "locations"},
			{Pattern: `(\d+)\+?\s*(teams?|departments?|divisions?)`, Unit: "teams"},
		},
	}
}

// Validate checks structural invariants that a YAML-supplied catalog can
// break. Regex validity is checked separately during Compile.
func (c *Catalog) Validate() error {
	if c.BaseScore < 0 {
		return fmt.Errorf("%w: base_score must not be negative", ErrInvalidCatalog)
	}

	seen := make(map[string]bool)
	check := func(group string, kws []Keyword) error {
		for _, kw := range kws {
			if kw.Term == "" {
				return fmt.Errorf("%w: empty term in %s keywords", ErrInvalidCatalog, group)
			}
			if seen[kw.Term] {
				return fmt.Errorf("%w: duplicate keyword %q", ErrInvalidCatalog, kw.Term)
			}
			seen[kw.Term] = true
		}
		return nil
	}
	if err := check("high", c.HighKeywords); err != nil {
		return err
	}
	if err := check("medium", c.MediumKeywords); err != nil {
		return err
	}
	if err := check("negative", c.NegativeKeywords); err != nil {
		return err
	}

	for _, tier := range c.RoleTiers {
		if tier.Label == "" {
			return fmt.Errorf("%w: role tier with empty label", ErrInvalidCatalog)
		}
		if len(tier.Titles) == 0 {
			return fmt.Errorf("%w: role tier %q has no titles", ErrInvalidCatalog, tier.Label)
		}
	}
	if c.DefaultRoleTier == "" {
		return fmt.Errorf("%w: default_role_tier is required", ErrInvalidCatalog)
	}

	for _, band := range c.SizeBands {
		if band.Range == "" {
			return fmt.Errorf("%w: size band with empty range", ErrInvalidCatalog)
		}
		if band.Multiplier <= 0 {
			return fmt.Errorf("%w: size band %q multiplier must be positive", ErrInvalidCatalog, band.Range)
		}
	}

	for _, sp := range c.ScalePatterns {
		if sp.Unit == "" {
			return fmt.Errorf("%w: scale pattern %q has no unit", ErrInvalidCatalog, sp.Pattern)
		}
	}

	return nil
}
