package validate

import (
	"fmt"
	"strings"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

var methodologyMarkers = []string{"calculat", "methodology", "derived from"}

// checkKEDLReadiness looks at each entry's evidence and suggests KEDL
// advancement, or reports what blocks it. Suggestions are informational
// only. Returns the issues plus the ready and blocked entry ids.
func (c *checker) checkKEDLReadiness() ([]Issue, []string, []string) {
	var issues []Issue
	var ready, blocked []string

	for i := range c.entries {
		entry := &c.entries[i]
		id := entry.FullID()

		switch entry.KEDL {
		case 100:
			if len(entry.Parameters) > 0 && len(entry.Citations) > 0 {
				ready = append(ready, id)
				issues = append(issues, Issue{
					Severity: SeverityInfo,
					Category: CategoryKEDL,
					EntryID:  id,
					Message:  "KEDL 100 entry may be ready to advance to 200 — has parameters and citations",
				})
			}

		case 200:
			// Readiness and blockage are independent signals: an entry
			// can satisfy the evidence bar and still wait on missing
			// dependencies.
			if hasMethodology(entry.Content) && len(entry.Citations) >= 3 && confidentParameterShare(entry) >= 0.5 {
				ready = append(ready, id)
				issues = append(issues, Issue{
					Severity: SeverityInfo,
					Category: CategoryKEDL,
					EntryID:  id,
					Message:  "KEDL 200 entry may be ready to advance to 300 — has methodology, 3+ citations, and 50%+ parameters at CL3+",
				})
			}
			if missing := c.missingDependencies(entry); len(missing) > 0 {
				blocked = append(blocked, id)
				issues = append(issues, Issue{
					Severity: SeverityInfo,
					Category: CategoryKEDL,
					EntryID:  id,
					Message:  fmt.Sprintf("KEDL advancement blocked — depends on %d entries that don't exist yet", len(missing)),
					Details:  strings.Join(missing, ", "),
				})
			}

		case 300:
			if crossDomainRefs(entry) >= 3 && entry.Confidence >= 3 {
				ready = append(ready, id)
				issues = append(issues, Issue{
					Severity: SeverityInfo,
					Category: CategoryKEDL,
					EntryID:  id,
					Message:  "KEDL 300 entry may be ready to advance to 350 — has 3+ cross-domain refs and CL3+",
				})
			}
		}
	}

	return issues, ready, blocked
}

// missingDependencies returns the depends-on targets that resolve to no
// known entry.
func (c *checker) missingDependencies(entry *knowledge.KnowledgeEntry) []string {
	var missing []string
	for _, ref := range entry.CrossReferences {
		if ref.Relationship == knowledge.RelDependsOn && !c.entryIDs[ref.Slug] {
			missing = append(missing, ref.Slug)
		}
	}
	return missing
}

func hasMethodology(content string) bool {
	lower := strings.ToLower(content)
	for _, marker := range methodologyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// confidentParameterShare returns the fraction of parameters rated CL3
// or higher. Entries without parameters score zero.
func confidentParameterShare(entry *knowledge.KnowledgeEntry) float64 {
	if len(entry.Parameters) == 0 {
		return 0
	}
	confident := 0
	for _, param := range entry.Parameters {
		if param.Confidence >= 3 {
			confident++
		}
	}
	return float64(confident) / float64(len(entry.Parameters))
}

func crossDomainRefs(entry *knowledge.KnowledgeEntry) int {
	count := 0
	for _, ref := range entry.CrossReferences {
		if refDomain(ref.Slug) != string(entry.Domain) {
			count++
		}
	}
	return count
}

// refDomain returns the domain segment of a cross-reference slug
func refDomain(slug string) string {
	if i := strings.Index(slug, "/"); i >= 0 {
		return slug[:i]
	}
	return slug
}
