package validate

import (
	"fmt"
	"strings"
)

// FormatReport renders a report as human-readable markdown. The JSON
// report is the machine surface; this is what lands in the repo and in
// review threads.
func FormatReport(report *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Content Validation Report\n")
	fmt.Fprintf(&b, "*Generated: %s*\n", report.Timestamp)
	fmt.Fprintf(&b, "*Entries validated: %d*\n\n", report.TotalEntries)

	switch {
	case report.Errors == 0 && report.Warnings == 0:
		b.WriteString("## Status: CLEAN\n")
		b.WriteString("No errors or warnings found.\n")
	case report.Errors == 0:
		b.WriteString("## Status: HEALTHY (warnings only)\n")
		fmt.Fprintf(&b, "%d warning(s), %d info note(s).\n", report.Warnings, report.Info)
	default:
		b.WriteString("## Status: ISSUES FOUND\n")
		fmt.Fprintf(&b, "**%d error(s)**, %d warning(s), %d info note(s).\n", report.Errors, report.Warnings, report.Info)
	}
	b.WriteString("\n")

	s := report.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Check | Status |\n")
	b.WriteString("|-------|--------|\n")
	fmt.Fprintf(&b, "| Cross-references | %d/%d valid (%d broken) |\n",
		s.CrossReferences.Valid, s.CrossReferences.Total, s.CrossReferences.Broken)
	fmt.Fprintf(&b, "| Orphan entries | %d orphans |\n", s.Orphans.Count)
	fmt.Fprintf(&b, "| Citations | %d/%d valid |\n", s.Citations.Valid, s.Citations.Total)
	fmt.Fprintf(&b, "| Parameters | %d total, %d consistency issues |\n",
		s.Parameters.Total, s.Parameters.ConsistencyIssues)
	fmt.Fprintf(&b, "| Schema completeness | %d/%d entries complete |\n\n",
		s.Schema.Complete, s.Schema.Complete+s.Schema.Incomplete)

	writeIDSection(&b, "## KEDL Advancement Candidates", s.KEDL.ReadyToAdvance)
	writeIDSection(&b, "## KEDL Advancement Blocked", s.KEDL.Blocked)
	writeIDSection(&b, "## Orphan Entries", s.Orphans.Entries)

	if report.Errors > 0 {
		writeIssueSection(&b, "## Errors", report.Issues, SeverityError)
	}
	if report.Warnings > 0 {
		writeIssueSection(&b, "## Warnings", report.Issues, SeverityWarning)
	}
	if report.Info > 0 {
		writeIssueSection(&b, "## Info", report.Issues, SeverityInfo)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeIDSection(b *strings.Builder, heading string, ids []string) {
	if len(ids) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, id := range ids {
		fmt.Fprintf(b, "- %s\n", id)
	}
	b.WriteString("\n")
}

func writeIssueSection(b *strings.Builder, heading string, issues []Issue, severity Severity) {
	b.WriteString(heading + "\n")
	for _, issue := range issues {
		if issue.Severity != severity {
			continue
		}
		fmt.Fprintf(b, "- **[%s]** `%s`: %s\n", issue.Category, issue.EntryID, issue.Message)
		if issue.Details != "" {
			fmt.Fprintf(b, "  - %s\n", issue.Details)
		}
	}
	b.WriteString("\n")
}
