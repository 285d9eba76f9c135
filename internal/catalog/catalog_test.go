package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := Default()
	require.NoError(t, cat.Validate())

	compiled, err := Compile(cat)
	require.NoError(t, err)
	assert.NotNil(t, compiled)
}

func TestMatchKeywords(t *testing.T) {
	compiled := MustCompile(Default())

	tests := []struct {
		name    string
		message string
		want    map[string]int
	}{
		{
			name:    "high priority terms",
			message: "This is URGENT, we need a migration",
			want:    map[string]int{"urgent": 15, "migration": 10},
		},
		{
			name:    "multi-word term",
			message: "we need now, not next quarter",
			want:    map[string]int{"need now": 15},
		},
		{
			name:    "currency symbol",
			message: "we have $50k to spend",
			want:    map[string]int{"$": 10},
		},
		{
			name:    "negative terms",
			message: "student thesis research",
			want:    map[string]int{"student": -30, "thesis": -25, "research": -8},
		},
		{
			name:    "no matches",
			message: "hello there",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := compiled.MatchKeywords(tt.message)
			got := make(map[string]int)
			for _, h := range hits {
				got[h.Term] = h.Weight
			}
			if tt.want == nil {
				assert.Empty(t, hits)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchKeywordsDeduplicates(t *testing.T) {
	compiled := MustCompile(Default())

	hits := compiled.MatchKeywords("urgent urgent urgent")
	require.Len(t, hits, 1)
	assert.Equal(t, "urgent", hits[0].Term)
}

func TestMatchKeywordsOrderIsStable(t *testing.T) {
	compiled := MustCompile(Default())

	first := compiled.MatchKeywords("free demo, urgent deadline")
	for range 20 {
		assert.Equal(t, first, compiled.MatchKeywords("free demo, urgent deadline"))
	}
}

func TestMatchRole(t *testing.T) {
	compiled := MustCompile(Default())

	tests := []struct {
		role      string
		wantScore int
		wantTier  string
	}{
		{"CTO", 25, "Executive"},
		{"VP of Sales", 25, "Executive"},
		{"Head of Platform", 25, "Executive"},
		{"Senior Director", 25, "Executive"},
		{"Engineering Manager", 15, "Decision Maker"},
		{"Principal Engineer", 15, "Decision Maker"},
		{"Developer", 5, "Standard"},
		{"", 5, "Standard"},
	}

	for _, tt := range tests {
		score, tier := compiled.MatchRole(tt.role)
		assert.Equal(t, tt.wantScore, score, "role %q", tt.role)
		assert.Equal(t, tt.wantTier, tier, "role %q", tt.role)
	}
}

func TestMultiplier(t *testing.T) {
	compiled := MustCompile(Default())

	assert.InDelta(t, 0.5, compiled.Multiplier("1-10"), 0.0001)
	assert.InDelta(t, 1.5, compiled.Multiplier("1000+"), 0.0001)
	assert.InDelta(t, 1.0, compiled.Multiplier("N/A"), 0.0001)
	assert.InDelta(t, 1.0, compiled.Multiplier(""), 0.0001)
}

func TestUrgencyAndBudgetMatches(t *testing.T) {
	compiled := MustCompile(Default())

	assert.Equal(t, 0, compiled.UrgencyMatches("hello"))
	assert.Equal(t, 1, compiled.UrgencyMatches("our deadline is near"))
	assert.GreaterOrEqual(t, compiled.UrgencyMatches("urgent, deadline in 3 days, need it now"), 3)

	assert.Equal(t, 0, compiled.BudgetMatches("no money talk"))
	assert.Equal(t, 1, compiled.BudgetMatches("budget approved for this"))
	assert.Equal(t, 3, compiled.BudgetMatches("$50k budget approved"))
}

func TestMatchScale(t *testing.T) {
	compiled := MustCompile(Default())

	hit, ok := compiled.MatchScale("rolling out to 750+ users next month")
	require.True(t, ok)
	assert.Equal(t, 750, hit.Quantity)
	assert.Equal(t, "users", hit.Unit)

	hit, ok = compiled.MatchScale("we have 12 offices")
	require.True(t, ok)
	assert.Equal(t, 12, hit.Quantity)
	assert.Equal(t, "locations", hit.Unit)

	_, ok = compiled.MatchScale("no numbers here")
	assert.False(t, ok)
}

func TestValidateRejectsDuplicates(t *testing.T) {
	cat := Default()
	cat.MediumKeywords = append(cat.MediumKeywords, Keyword{Term: "urgent", Weight: 1})

	err := cat.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestValidateRejectsBadMultiplier(t *testing.T) {
	cat := Default()
	cat.SizeBands[0].Multiplier = 0

	err := cat.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestCompileRejectsBadPattern(t *testing.T) {
	cat := Default()
	cat.UrgencyPatterns = append(cat.UrgencyPatterns, `([unclosed`)

	_, err := Compile(cat)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestCompileRejectsScalePatternWithoutGroup(t *testing.T) {
	cat := Default()
	cat.ScalePatterns = []ScalePattern{{Pattern: `\d+ users`, Unit: "users"}}

	_, err := Compile(cat)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	content := []byte("base_score: 30\nmedium_keywords:\n  - term: webinar\n    weight: 4\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cat, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cat.BaseScore)
	require.Len(t, cat.MediumKeywords, 1)
	assert.Equal(t, "webinar", cat.MediumKeywords[0].Term)
	// Untouched sections keep their defaults.
	assert.NotEmpty(t, cat.HighKeywords)
	assert.NotEmpty(t, cat.UrgencyPatterns)
	assert.Equal(t, "Standard", cat.DefaultRoleTier)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/catalog.yml")
	assert.Error(t, err)
}
