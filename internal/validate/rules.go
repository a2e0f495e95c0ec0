package validate

import (
	"fmt"
	"strings"
)

// Rule is a corpus-wide invariant over named parameters. Rules are
// evaluated after per-entry checks, against the full occurrence map,
// and emit issues under entry_id "global" when the invariant spans
// more than one entry.
type Rule struct {
	Name   string
	Params []string
	Check  func(occurrences map[string][]Occurrence) []Issue
}

// DefaultRules holds the invariants every validation run enforces.
// Adding an invariant means appending a rule here.
var DefaultRules = []Rule{
	identicalEverywhere("target_population"),
	subsystemWithinWhole("compute_power_gw", "total_power_gw",
		"Compute power (%s GW) exceeds total power generation (%s GW)"),
}

// identicalEverywhere requires every assertion of the named parameter
// to carry the same value.
func identicalEverywhere(name string) Rule {
	return Rule{
		Name:   "identical:" + name,
		Params: []string{name},
		Check: func(occurrences map[string][]Occurrence) []Issue {
			occs := occurrences[name]
			if len(occs) < 2 || distinctValues(occs) < 2 {
				return nil
			}
			values := make([]string, 0, len(occs))
			parts := make([]string, 0, len(occs))
			seen := make(map[float64]bool)
			for _, occ := range occs {
				if !seen[occ.Value] {
					seen[occ.Value] = true
					values = append(values, formatValue(occ.Value))
				}
				parts = append(parts, fmt.Sprintf("%s: %s", occ.EntryID, formatValue(occ.Value)))
			}
			return []Issue{{
				Severity: SeverityError,
				Category: CategoryConsistency,
				EntryID:  GlobalEntryID,
				Message:  fmt.Sprintf("Critical: %s differs across entries: %s", name, strings.Join(values, ", ")),
				Details:  strings.Join(parts, "; "),
			}}
		},
	}
}

// subsystemWithinWhole requires the largest asserted value of the
// subsystem parameter to stay within the largest asserted value of the
// whole. format receives the two values in that order.
func subsystemWithinWhole(subsystem, whole, format string) Rule {
	return Rule{
		Name:   "bound:" + subsystem + "<=" + whole,
		Params: []string{subsystem, whole},
		Check: func(occurrences map[string][]Occurrence) []Issue {
			subMax, subOK := maxValue(occurrences[subsystem])
			wholeMax, wholeOK := maxValue(occurrences[whole])
			if !subOK || !wholeOK || subMax <= wholeMax {
				return nil
			}
			return []Issue{{
				Severity: SeverityError,
				Category: CategoryConsistency,
				EntryID:  GlobalEntryID,
				Message:  fmt.Sprintf(format, formatValue(subMax), formatValue(wholeMax)),
			}}
		},
	}
}

func maxValue(occs []Occurrence) (float64, bool) {
	found := false
	var max float64
	for _, occ := range occs {
		if !occ.HasValue {
			continue
		}
		if !found || occ.Value > max {
			max = occ.Value
			found = true
		}
	}
	return max, found
}
