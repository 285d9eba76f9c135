package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a signal catalog from a YAML file. Sections missing from
// the file fall back to the built-in catalog, so a file can override just
// the keyword tables while keeping the default patterns.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	cat := Default()
	var overlay Catalog
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	cat.merge(&overlay)

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cat, nil
}

// merge overlays non-empty sections of o onto c.
func (c *Catalog) merge(o *Catalog) {
	if o.BaseScore != 0 {
		c.BaseScore = o.BaseScore
	}
	if len(o.HighKeywords) > 0 {
		c.HighKeywords = o.HighKeywords
	}
	if len(o.MediumKeywords) > 0 {
		c.MediumKeywords = o.MediumKeywords
	}
	if len(o.NegativeKeywords) > 0 {
		c.NegativeKeywords = o.NegativeKeywords
	}
	if len(o.RoleTiers) > 0 {
		c.RoleTiers = o.RoleTiers
	}
	if o.DefaultRoleScore != 0 {
		c.DefaultRoleScore = o.DefaultRoleScore
	}
	if o.DefaultRoleTier != "" {
		c.DefaultRoleTier = o.DefaultRoleTier
	}
	if len(o.SizeBands) > 0 {
		c.SizeBands = o.SizeBands
	}
	if len(o.UrgencyPatterns) > 0 {
		c.UrgencyPatterns = o.UrgencyPatterns
	}
	if len(o.BudgetPatterns) > 0 {
		c.BudgetPatterns = o.BudgetPatterns
	}
	if len(o.ScalePatterns) > 0 {
		c.ScalePatterns = o.ScalePatterns
	}
}
