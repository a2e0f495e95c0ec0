package validate

// Severity classifies a validation finding.
// Errors block publication; warnings indicate real defects that should
// be fixed before editorial completion; info is advisory only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category identifies which check family produced an issue
type Category string

const (
	CategorySchema         Category = "schema"
	CategoryCrossReference Category = "cross-reference"
	CategoryCitation       Category = "citation"
	CategoryParameter      Category = "parameter"
	CategoryConsistency    Category = "parameter-consistency"
	CategoryOrphan         Category = "orphan"
	CategoryKEDL           Category = "kedl"
)

// GlobalEntryID marks corpus-wide issues not attributable to one entry
const GlobalEntryID = "global"

// Issue is a single validation finding. Issues are produced, never
// mutated; findings are always data, never errors.
type Issue struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	EntryID  string   `json:"entry_id"`
	Message  string   `json:"message"`
	Details  string   `json:"details,omitempty"`
}

// CrossReferenceSummary tallies outbound reference integrity
type CrossReferenceSummary struct {
	Valid  int `json:"valid"`
	Broken int `json:"broken"`
	Total  int `json:"total"`
}

// OrphanSummary lists entries with zero inbound references
type OrphanSummary struct {
	Count   int      `json:"count"`
	Entries []string `json:"entries"`
}

// CitationSummary tallies citation integrity
type CitationSummary struct {
	Valid  int `json:"valid"`
	Issues int `json:"issues"`
	Total  int `json:"total"`
}

// ParameterSummary tallies cross-entry parameter consistency
type ParameterSummary struct {
	Total             int `json:"total"`
	ConsistencyIssues int `json:"consistency_issues"`
}

// KEDLSummary lists maturity-advancement candidates and blocked entries
type KEDLSummary struct {
	ReadyToAdvance []string `json:"ready_to_advance"`
	Blocked        []string `json:"blocked"`
}

// SchemaSummary tallies entries with complete vs incomplete frontmatter
type SchemaSummary struct {
	Complete   int `json:"complete"`
	Incomplete int `json:"incomplete"`
}

// Summary is the typed roll-up of all check families
type Summary struct {
	CrossReferences CrossReferenceSummary `json:"cross_references"`
	Orphans         OrphanSummary         `json:"orphans"`
	Citations       CitationSummary       `json:"citations"`
	Parameters      ParameterSummary      `json:"parameters"`
	KEDL            KEDLSummary           `json:"kedl"`
	Schema          SchemaSummary         `json:"schema"`
}

// Report is the full result of one validation run. Entirely derived;
// regenerated fresh on every run.
type Report struct {
	Timestamp    string  `json:"timestamp"`
	TotalEntries int     `json:"total_entries"`
	Issues       []Issue `json:"issues"`
	Errors       int     `json:"errors"`
	Warnings     int     `json:"warnings"`
	Info         int     `json:"info"`
	Summary      Summary `json:"summary"`
}
