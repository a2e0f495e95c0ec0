package validate

import (
	"fmt"
	"strings"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// checkCrossReferences verifies every outbound reference of one entry.
// Broken links are warnings, not errors: they are common while related
// entries are still being written and should not hard-fail a build.
func (c *checker) checkCrossReferences(entry *knowledge.KnowledgeEntry, id string) []Issue {
	var issues []Issue

	for _, ref := range entry.CrossReferences {
		if !c.entryIDs[ref.Slug] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Category: CategoryCrossReference,
				EntryID:  id,
				Message:  fmt.Sprintf("Broken cross-reference: %q does not exist", ref.Slug),
				Details:  fmt.Sprintf("Referenced from %s with relationship %q", id, ref.Relationship),
			})
		}

		if !ref.Relationship.IsValid() {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Category: CategoryCrossReference,
				EntryID:  id,
				Message:  fmt.Sprintf("Invalid relationship type: %q", ref.Relationship),
				Details:  fmt.Sprintf("On reference to %q. Valid types: %s", ref.Slug, joinRelationships()),
			})
		}

		if ref.Slug == id {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Category: CategoryCrossReference,
				EntryID:  id,
				Message:  "Entry references itself",
			})
		}

		if len(strings.Split(ref.Slug, "/")) < 3 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Category: CategoryCrossReference,
				EntryID:  id,
				Message:  fmt.Sprintf("Malformed cross-reference slug: %q (expected domain/subdomain/entry-slug)", ref.Slug),
			})
		}
	}

	seen := make(map[string]bool, len(entry.CrossReferences))
	for _, ref := range entry.CrossReferences {
		if seen[ref.Slug] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Category: CategoryCrossReference,
				EntryID:  id,
				Message:  fmt.Sprintf("Duplicate cross-reference to %q", ref.Slug),
			})
		}
		seen[ref.Slug] = true
	}

	return issues
}

func joinRelationships() string {
	parts := make([]string, len(knowledge.RelationshipTypes))
	for i, rel := range knowledge.RelationshipTypes {
		parts[i] = string(rel)
	}
	return strings.Join(parts, ", ")
}
