package validate

import (
	"fmt"
	"strings"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// checkParameters verifies every quantitative parameter of one entry
func (c *checker) checkParameters(entry *knowledge.KnowledgeEntry, id string) []Issue {
	var issues []Issue

	seen := make(map[string]bool, len(entry.Parameters))
	for _, param := range entry.Parameters {
		if param.Name == "" {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryParameter, EntryID: id,
				Message: "Parameter missing name",
			})
		}
		if param.Value == nil {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryParameter, EntryID: id,
				Message: fmt.Sprintf("Parameter %q missing value", param.Name),
			})
		}
		if param.Unit == "" {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryParameter, EntryID: id,
				Message: fmt.Sprintf("Parameter %q missing unit", param.Name),
			})
		}
		if !param.Confidence.IsValid() {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryParameter, EntryID: id,
				Message: fmt.Sprintf("Parameter %q has invalid confidence: %d", param.Name, param.Confidence),
			})
		}

		// An entry cannot claim more rigor than its own rating supports
		if param.Confidence > entry.Confidence {
			issues = append(issues, Issue{
				Severity: SeverityWarning, Category: CategoryParameter, EntryID: id,
				Message: fmt.Sprintf("Parameter %q confidence (%d) exceeds entry confidence (%d)",
					param.Name, param.Confidence, entry.Confidence),
			})
		}

		// Negative values are suspicious for most physical quantities but
		// legitimate for deltas and offsets. Best-effort lint only.
		if param.Value != nil && *param.Value < 0 &&
			!strings.Contains(param.Name, "delta") && !strings.Contains(param.Name, "offset") {
			issues = append(issues, Issue{
				Severity: SeverityInfo, Category: CategoryParameter, EntryID: id,
				Message: fmt.Sprintf("Parameter %q has negative value: %s %s",
					param.Name, formatValue(*param.Value), param.Unit),
			})
		}

		if seen[param.Name] {
			issues = append(issues, Issue{
				Severity: SeverityWarning, Category: CategoryParameter, EntryID: id,
				Message: fmt.Sprintf("Duplicate parameter name: %q", param.Name),
			})
		}
		seen[param.Name] = true
	}

	return issues
}

// formatValue renders a parameter value without a trailing ".000000"
func formatValue(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}
