package validate

import (
	"time"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// checker carries the lookup maps shared by all check families.
// Entries and domain metadata are read-only for the duration of a run.
type checker struct {
	entries    []knowledge.KnowledgeEntry
	entryIDs   map[string]bool
	subdomains map[string]bool
}

// Run executes all check families over the published corpus and
// returns the unified report. No check raises on malformed input; a
// bad field is the condition being tested, not a failure. Given
// identical inputs the issue list and summary are identical across
// runs (the timestamp aside).
func Run(entries []knowledge.KnowledgeEntry, domains []knowledge.DomainMeta) *Report {
	c := &checker{
		entries:    entries,
		entryIDs:   make(map[string]bool, len(entries)),
		subdomains: make(map[string]bool),
	}
	for i := range entries {
		c.entryIDs[entries[i].FullID()] = true
	}
	for _, domain := range domains {
		for _, sub := range domain.Subdomains {
			c.subdomains[string(domain.Slug)+"/"+sub.Slug] = true
		}
	}

	var issues []Issue

	// Per-entry checks in input order, families in fixed order
	for i := range entries {
		entry := &entries[i]
		id := entry.FullID()
		issues = append(issues, c.checkSchema(entry, id)...)
		issues = append(issues, c.checkCrossReferences(entry, id)...)
		issues = append(issues, c.checkCitations(entry, id)...)
		issues = append(issues, c.checkParameters(entry, id)...)
	}

	// Corpus-wide checks run after the full per-entry data set exists
	issues = append(issues, c.checkOrphans()...)
	issues = append(issues, c.checkParameterConsistency()...)
	kedlIssues, kedlReady, kedlBlocked := c.checkKEDLReadiness()
	issues = append(issues, kedlIssues...)

	if issues == nil {
		issues = []Issue{}
	}

	report := &Report{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		TotalEntries: len(entries),
		Issues:       issues,
	}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			report.Errors++
		case SeverityWarning:
			report.Warnings++
		case SeverityInfo:
			report.Info++
		}
	}

	report.Summary = c.buildSummary(issues, kedlReady, kedlBlocked)
	return report
}

// buildSummary derives the typed roll-up from the raw issue list
func (c *checker) buildSummary(issues []Issue, kedlReady, kedlBlocked []string) Summary {
	var s Summary

	// Cross-reference tallies
	for i := range c.entries {
		for _, ref := range c.entries[i].CrossReferences {
			s.CrossReferences.Total++
			if !c.entryIDs[ref.Slug] {
				s.CrossReferences.Broken++
			}
		}
	}
	s.CrossReferences.Valid = s.CrossReferences.Total - s.CrossReferences.Broken

	// Orphans
	inbound := make(map[string]bool)
	for i := range c.entries {
		for _, ref := range c.entries[i].CrossReferences {
			inbound[ref.Slug] = true
		}
	}
	s.Orphans.Entries = []string{}
	for i := range c.entries {
		id := c.entries[i].FullID()
		if !inbound[id] {
			s.Orphans.Entries = append(s.Orphans.Entries, id)
		}
	}
	s.Orphans.Count = len(s.Orphans.Entries)

	// Citations
	for i := range c.entries {
		s.Citations.Total += len(c.entries[i].Citations)
	}
	for _, issue := range issues {
		if issue.Category == CategoryCitation {
			s.Citations.Issues++
		}
	}
	s.Citations.Valid = s.Citations.Total - s.Citations.Issues

	// Parameters
	for i := range c.entries {
		s.Parameters.Total += len(c.entries[i].Parameters)
	}
	for _, issue := range issues {
		if issue.Category == CategoryConsistency {
			s.Parameters.ConsistencyIssues++
		}
	}

	// KEDL
	if kedlReady == nil {
		kedlReady = []string{}
	}
	if kedlBlocked == nil {
		kedlBlocked = []string{}
	}
	s.KEDL.ReadyToAdvance = kedlReady
	s.KEDL.Blocked = kedlBlocked

	// Schema: an entry with any schema issue counts as incomplete
	incomplete := make(map[string]bool)
	for _, issue := range issues {
		if issue.Category == CategorySchema {
			incomplete[issue.EntryID] = true
		}
	}
	s.Schema.Incomplete = len(incomplete)
	s.Schema.Complete = len(c.entries) - len(incomplete)

	return s
}
