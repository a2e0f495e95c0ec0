package validate

// checkOrphans flags entries that no other entry references.
// Runs corpus-wide over the inbound-reference map.
func (c *checker) checkOrphans() []Issue {
	inbound := make(map[string]bool)
	for i := range c.entries {
		for _, ref := range c.entries[i].CrossReferences {
			inbound[ref.Slug] = true
		}
	}

	var issues []Issue
	for i := range c.entries {
		id := c.entries[i].FullID()
		if !inbound[id] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Category: CategoryOrphan,
				EntryID:  id,
				Message:  "Orphan entry — no other entries reference this one",
				Details:  "Consider adding cross-references from related entries to integrate this into the knowledge graph",
			})
		}
	}
	return issues
}
