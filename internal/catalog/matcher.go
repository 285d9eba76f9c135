package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Compiled is an immutable, match-ready form of a Catalog. It is built once
// at startup and safe for concurrent use.
type Compiled struct {
	cat *Catalog

	matcher *ahocorasick.Matcher
	terms   []string
	weights map[string]int

	urgency []*regexp.Regexp
	budget  []*regexp.Regexp
	scale   []compiledScale
}

type compiledScale struct {
	re   *regexp.Regexp
	unit string
}

// KeywordHit records one matched term and its weight contribution.
type KeywordHit struct {
	Term   string
	Weight int
}

// ScaleHit is the quantity extracted by the first matching scale pattern.
type ScaleHit struct {
	Quantity int
	Unit     string
}

// Compile validates a catalog and builds its keyword automaton and regex set.
func Compile(cat *Catalog) (*Compiled, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	c := &Compiled{
		cat:     cat,
		weights: make(map[string]int),
	}

	for _, group := range [][]Keyword{cat.HighKeywords, cat.MediumKeywords, cat.NegativeKeywords} {
		for _, kw := range group {
			term := normalizeTerm(kw.Term)
			c.terms = append(c.terms, term)
			c.weights[term] = kw.Weight
		}
	}
	if len(c.terms) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.terms)
	}

	var err error
	if c.urgency, err = compilePatterns("urgency", cat.UrgencyPatterns); err != nil {
		return nil, err
	}
	if c.budget, err = compilePatterns("budget", cat.BudgetPatterns); err != nil {
		return nil, err
	}
	for _, sp := range cat.ScalePatterns {
		re, reErr := regexp.Compile(sp.Pattern)
		if reErr != nil {
			return nil, fmt.Errorf("%w: scale pattern %q: %v", ErrInvalidCatalog, sp.Pattern, reErr)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("%w: scale pattern %q needs a quantity capture group", ErrInvalidCatalog, sp.Pattern)
		}
		c.scale = append(c.scale, compiledScale{re: re, unit: sp.Unit})
	}

	return c, nil
}

// MustCompile is like Compile but panics on error. For use with the
// built-in catalog, which is known valid.
func MustCompile(cat *Catalog) *Compiled {
	c, err := Compile(cat)
	if err != nil {
		panic(err)
	}
	return c
}

func compilePatterns(group string, patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s pattern %q: %v", ErrInvalidCatalog, group, p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Catalog returns the source catalog.
func (c *Compiled) Catalog() *Catalog {
	return c.cat
}

// MatchKeywords scans a lowercased message in a single automaton pass and
// returns every catalog term it contains, in catalog order. Each term
// contributes its weight once no matter how often it appears.
func (c *Compiled) MatchKeywords(message string) []KeywordHit {
	if c.matcher == nil || message == "" {
		return nil
	}

	text := strings.ToLower(message)
	hitSet := make(map[string]bool)
	for _, idx := range c.matcher.Match([]byte(text)) {
		if idx < len(c.terms) {
			hitSet[c.terms[idx]] = true
		}
	}
	if len(hitSet) == 0 {
		return nil
	}

	hits := make([]KeywordHit, 0, len(hitSet))
	for _, term := range c.terms {
		if hitSet[term] {
			hits = append(hits, KeywordHit{Term: term, Weight: c.weights[term]})
			delete(hitSet, term)
		}
	}
	return hits
}

// MatchRole returns the score and tier label for a role title. Tiers are
// checked in catalog order; within a tier, title keywords are checked in
// order and the first containment wins.
func (c *Compiled) MatchRole(role string) (int, string) {
	roleLower := strings.ToLower(role)
	for _, tier := range c.cat.RoleTiers {
		for _, title := range tier.Titles {
			if strings.Contains(roleLower, title) {
				return tier.Score, tier.Label
			}
		}
	}
	return c.cat.DefaultRoleScore, c.cat.DefaultRoleTier
}

// Multiplier returns the score multiplier for a company size range.
// Unrecognized sizes get the neutral multiplier 1.0.
func (c *Compiled) Multiplier(companySize string) float64 {
	for _, band := range c.cat.SizeBands {
		if band.Range == companySize {
			return band.Multiplier
		}
	}
	return 1.0
}

// UrgencyMatches counts how many urgency patterns match the message.
func (c *Compiled) UrgencyMatches(message string) int {
	return countMatches(c.urgency, strings.ToLower(message))
}

// BudgetMatches counts how many budget patterns match the message.
func (c *Compiled) BudgetMatches(message string) int {
	return countMatches(c.budget, strings.ToLower(message))
}

// MatchScale extracts the quantity from the first scale pattern that
// matches the message. Returns false if no pattern matches.
func (c *Compiled) MatchScale(message string) (ScaleHit, bool) {
	text := strings.ToLower(message)
	for _, cs := range c.scale {
		m := cs.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return ScaleHit{Quantity: qty, Unit: cs.unit}, true
	}
	return ScaleHit{}, false
}

func countMatches(res []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range res {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
