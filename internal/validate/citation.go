package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// checkCitations verifies every citation of one entry
func (c *checker) checkCitations(entry *knowledge.KnowledgeEntry, id string) []Issue {
	var issues []Issue

	seen := make(map[string]bool, len(entry.Citations))
	for _, cit := range entry.Citations {
		if cit.ID == "" {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryCitation, EntryID: id,
				Message: "Citation missing id",
			})
		}
		if cit.Title == "" {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryCitation, EntryID: id,
				Message: fmt.Sprintf("Citation %q missing title", cit.ID),
			})
		}
		if cit.Source == "" {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryCitation, EntryID: id,
				Message: fmt.Sprintf("Citation %q missing source", cit.ID),
			})
		}
		if cit.Year < 1900 || cit.Year > 2030 {
			issues = append(issues, Issue{
				Severity: SeverityWarning, Category: CategoryCitation, EntryID: id,
				Message: fmt.Sprintf("Citation %q has suspicious year: %d", cit.ID, cit.Year),
			})
		}

		if !cit.Type.IsValid() {
			issues = append(issues, Issue{
				Severity: SeverityError, Category: CategoryCitation, EntryID: id,
				Message: fmt.Sprintf("Citation %q has invalid type: %q", cit.ID, cit.Type),
				Details: "Valid types: " + joinCitationTypes(),
			})
		}

		if cit.URL != "" && !validURL(cit.URL) {
			issues = append(issues, Issue{
				Severity: SeverityWarning, Category: CategoryCitation, EntryID: id,
				Message: fmt.Sprintf("Citation %q has malformed URL: %s", cit.ID, cit.URL),
			})
		}

		if cit.Type == knowledge.CitationPeerReviewed && cit.URL == "" {
			issues = append(issues, Issue{
				Severity: SeverityInfo, Category: CategoryCitation, EntryID: id,
				Message: fmt.Sprintf("Peer-reviewed citation %q has no URL — consider adding for verification", cit.ID),
			})
		}

		if seen[cit.ID] {
			issues = append(issues, Issue{
				Severity: SeverityWarning, Category: CategoryCitation, EntryID: id,
				Message: fmt.Sprintf("Duplicate citation id: %q", cit.ID),
			})
		}
		seen[cit.ID] = true
	}

	// Entries beyond the lowest maturity tier are expected to cite sources
	if len(entry.Citations) == 0 && entry.KEDL >= 200 {
		issues = append(issues, Issue{
			Severity: SeverityWarning, Category: CategoryCitation, EntryID: id,
			Message: "No citations at KEDL 200+ — entries should cite at least one source",
		})
	}

	return issues
}

// validURL reports whether raw parses as an absolute URL with a scheme
// and host.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func joinCitationTypes() string {
	parts := make([]string, len(knowledge.CitationTypes))
	for i, t := range knowledge.CitationTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
