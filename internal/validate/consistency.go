package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// Occurrence is one assertion of a named parameter somewhere in the
// corpus.
type Occurrence struct {
	EntryID    string
	Value      float64
	HasValue   bool
	Unit       string
	Confidence knowledge.ConfidenceLevel
}

// checkParameterConsistency reconciles same-named parameters asserted
// across independent entries. Same name, same unit, different value is
// a conflict (warning). Same name under different units is flagged but
// never auto-resolved, since unit variation may be intentional.
func (c *checker) checkParameterConsistency() []Issue {
	occurrences := c.collectOccurrences()

	names := make([]string, 0, len(occurrences))
	for name := range occurrences {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []Issue
	for _, name := range names {
		occs := occurrences[name]
		if len(occs) < 2 {
			continue
		}

		// Group by normalized unit, preserving first-seen order
		byUnit := make(map[string][]Occurrence)
		var unitOrder []string
		for _, occ := range occs {
			unit := strings.ToLower(strings.TrimSpace(occ.Unit))
			if _, ok := byUnit[unit]; !ok {
				unitOrder = append(unitOrder, unit)
			}
			byUnit[unit] = append(byUnit[unit], occ)
		}

		for _, unit := range unitOrder {
			unitOccs := byUnit[unit]
			if len(unitOccs) < 2 {
				continue
			}
			if distinctValues(unitOccs) > 1 {
				parts := make([]string, len(unitOccs))
				for i, occ := range unitOccs {
					parts[i] = fmt.Sprintf("%s (%s %s, CL%d)", occ.EntryID, formatValue(occ.Value), occ.Unit, occ.Confidence)
				}
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Category: CategoryConsistency,
					EntryID:  unitOccs[0].EntryID,
					Message:  fmt.Sprintf("Parameter %q has conflicting values across entries", name),
					Details:  strings.Join(parts, " vs. "),
				})
			}
		}

		if len(unitOrder) > 1 {
			issues = append(issues, Issue{
				Severity: SeverityInfo,
				Category: CategoryConsistency,
				EntryID:  occs[0].EntryID,
				Message:  fmt.Sprintf("Parameter %q appears with different units: %s", name, strings.Join(unitOrder, ", ")),
				Details:  "This may be intentional (e.g., metric/imperial) or a data entry inconsistency",
			})
		}
	}

	// Named domain invariants from the rule table
	for _, rule := range DefaultRules {
		issues = append(issues, rule.Check(occurrences)...)
	}

	return issues
}

// collectOccurrences builds the global parameter map in entry input
// order.
func (c *checker) collectOccurrences() map[string][]Occurrence {
	occurrences := make(map[string][]Occurrence)
	for i := range c.entries {
		entry := &c.entries[i]
		id := entry.FullID()
		for _, param := range entry.Parameters {
			occurrences[param.Name] = append(occurrences[param.Name], Occurrence{
				EntryID:    id,
				Value:      param.Val(),
				HasValue:   param.Value != nil,
				Unit:       param.Unit,
				Confidence: param.Confidence,
			})
		}
	}
	return occurrences
}

func distinctValues(occs []Occurrence) int {
	seen := make(map[float64]bool, len(occs))
	for _, occ := range occs {
		seen[occ.Value] = true
	}
	return len(seen)
}
