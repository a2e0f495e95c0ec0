package validate

import (
	"fmt"
	"strings"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// checkSchema verifies frontmatter completeness and enum validity for
// a single entry.
func (c *checker) checkSchema(entry *knowledge.KnowledgeEntry, id string) []Issue {
	var issues []Issue

	addError := func(message, details string) {
		issues = append(issues, Issue{Severity: SeverityError, Category: CategorySchema, EntryID: id, Message: message, Details: details})
	}
	addWarning := func(message string) {
		issues = append(issues, Issue{Severity: SeverityWarning, Category: CategorySchema, EntryID: id, Message: message})
	}

	if entry.ID == "" {
		addError("Missing required field: id", "")
	}
	if entry.Title == "" {
		addError("Missing required field: title", "")
	}
	if entry.Summary == "" {
		addError("Missing required field: summary", "")
	}
	if entry.Created == "" {
		addError("Missing required field: created", "")
	}
	if entry.Updated == "" {
		addError("Missing required field: updated", "")
	}

	if !entry.Domain.IsValid() {
		addError(
			fmt.Sprintf("Invalid domain: %q", entry.Domain),
			"Valid domains: "+joinDomains(),
		)
	}

	if !c.subdomains[string(entry.Domain)+"/"+entry.Subdomain] {
		addError(fmt.Sprintf("Subdomain %q not found in %s taxonomy", entry.Subdomain, entry.Domain), "")
	}

	if !entry.KEDL.IsValid() {
		addError(
			fmt.Sprintf("Invalid KEDL level: %d", entry.KEDL),
			"Valid levels: 100, 200, 300, 350, 400, 500",
		)
	}

	if !entry.Confidence.IsValid() {
		addError(
			fmt.Sprintf("Invalid confidence level: %d", entry.Confidence),
			"Valid levels: 1, 2, 3, 4, 5",
		)
	}

	if !entry.EntryType.IsValid() {
		addError(fmt.Sprintf("Invalid entry_type: %q", entry.EntryType), "")
	}

	if len(entry.Authors) == 0 {
		addError("Missing authors — at least one author required", "")
	} else {
		for _, author := range entry.Authors {
			if author.ID == "" {
				addError("Author missing id", "")
			}
			if author.Type != knowledge.AuthorHuman && author.Type != knowledge.AuthorAgent {
				addError(fmt.Sprintf("Invalid author type: %q (must be \"human\" or \"agent\")", author.Type), "")
			}
			if author.Type == knowledge.AuthorAgent && author.Model == "" {
				addWarning(fmt.Sprintf("Agent author %q missing model field", author.ID))
			}
		}
	}

	if entry.Summary != "" {
		if words := len(strings.Fields(entry.Summary)); words > 300 {
			addWarning(fmt.Sprintf("Summary exceeds 300 words (%d words)", words))
		}
	}

	// Quality floor warnings
	if len(entry.CrossReferences) == 0 {
		addWarning("No cross-references — entries should link to at least one other entry")
	}
	if len(entry.OpenQuestions) == 0 {
		addWarning("No open questions — entries should identify at least one open question")
	}
	if len(entry.Assumptions) == 0 {
		addWarning("No assumptions stated — entries should list at least one assumption")
	}
	if len(entry.Parameters) == 0 {
		addWarning("No quantitative parameters — entries should include at least one parameter with units")
	}

	if entry.ID != id {
		addWarning(fmt.Sprintf("Frontmatter id %q doesn't match file path %q", entry.ID, id))
	}

	return issues
}

func joinDomains() string {
	parts := make([]string, len(knowledge.Domains))
	for i, domain := range knowledge.Domains {
		parts[i] = string(domain)
	}
	return strings.Join(parts, ", ")
}
