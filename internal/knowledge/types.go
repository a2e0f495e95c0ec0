package knowledge

// Domain is one of the 8 fixed top-level taxonomy slugs
type Domain string

const (
	DomainStructural    Domain = "structural-engineering"
	DomainEnergy        Domain = "energy-systems"
	DomainEnvironmental Domain = "environmental-systems"
	DomainMechanical    Domain = "mechanical-electrical"
	DomainCompute       Domain = "ai-compute-infrastructure"
	DomainInstitutional Domain = "institutional-design"
	DomainConstruction  Domain = "construction-logistics"
	DomainUrban         Domain = "urban-design-livability"
)

// Domains lists all valid domains in declaration order
var Domains = []Domain{
	DomainStructural,
	DomainEnergy,
	DomainEnvironmental,
	DomainMechanical,
	DomainCompute,
	DomainInstitutional,
	DomainConstruction,
	DomainUrban,
}

// IsValid reports whether d is one of the 8 declared domains
func (d Domain) IsValid() bool {
	for _, v := range Domains {
		if v == d {
			return true
		}
	}
	return false
}

// KEDLLevel is the ordinal maturity level of an entry
type KEDLLevel int

// KEDLLevels lists all valid levels in ascending order
var KEDLLevels = []KEDLLevel{100, 200, 300, 350, 400, 500}

// IsValid reports whether k is a declared KEDL level
func (k KEDLLevel) IsValid() bool {
	for _, v := range KEDLLevels {
		if v == k {
			return true
		}
	}
	return false
}

// ConfidenceLevel is the 1-5 evidentiary strength rating
type ConfidenceLevel int

// ConfidenceLevels lists all valid confidence levels in ascending order
var ConfidenceLevels = []ConfidenceLevel{1, 2, 3, 4, 5}

// IsValid reports whether c is in the 1-5 range
func (c ConfidenceLevel) IsValid() bool {
	return c >= 1 && c <= 5
}

// EntryType classifies a knowledge entry
type EntryType string

const (
	EntryConcept       EntryType = "concept"
	EntryAnalysis      EntryType = "analysis"
	EntrySpecification EntryType = "specification"
	EntryReference     EntryType = "reference"
	EntryOpenQuestion  EntryType = "open-question"
)

// EntryTypes lists all valid entry types
var EntryTypes = []EntryType{
	EntryConcept, EntryAnalysis, EntrySpecification, EntryReference, EntryOpenQuestion,
}

// IsValid reports whether t is a declared entry type
func (t EntryType) IsValid() bool {
	for _, v := range EntryTypes {
		if v == t {
			return true
		}
	}
	return false
}

// EntryStatus is the lifecycle status of an entry
type EntryStatus string

const (
	StatusDraft      EntryStatus = "draft"
	StatusPublished  EntryStatus = "published"
	StatusSuperseded EntryStatus = "superseded"
)

// CitationType classifies a citation's provenance
type CitationType string

const (
	CitationPeerReviewed   CitationType = "peer-reviewed"
	CitationStandard       CitationType = "standard"
	CitationProjectData    CitationType = "project-data"
	CitationInternal       CitationType = "internal"
	CitationExpertJudgment CitationType = "expert-judgment"
)

// CitationTypes lists all valid citation types
var CitationTypes = []CitationType{
	CitationPeerReviewed, CitationStandard, CitationProjectData,
	CitationInternal, CitationExpertJudgment,
}

// IsValid reports whether t is a declared citation type
func (t CitationType) IsValid() bool {
	for _, v := range CitationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// RelationshipType is the typed edge label of a cross-reference
type RelationshipType string

const (
	RelDependsOn     RelationshipType = "depends-on"
	RelInforms       RelationshipType = "informs"
	RelContradicts   RelationshipType = "contradicts"
	RelExtends       RelationshipType = "extends"
	RelAlternativeTo RelationshipType = "alternative-to"
)

// RelationshipTypes lists all valid relationship types
var RelationshipTypes = []RelationshipType{
	RelDependsOn, RelInforms, RelContradicts, RelExtends, RelAlternativeTo,
}

// IsValid reports whether r is a declared relationship type
func (r RelationshipType) IsValid() bool {
	for _, v := range RelationshipTypes {
		if v == r {
			return true
		}
	}
	return false
}

// AuthorType distinguishes human and agent authors
type AuthorType string

const (
	AuthorHuman AuthorType = "human"
	AuthorAgent AuthorType = "agent"
)

// Author is a contributor to an entry. Agent authors should declare a model.
type Author struct {
	ID    string     `json:"id" yaml:"id"`
	Type  AuthorType `json:"type" yaml:"type"`
	Model string     `json:"model,omitempty" yaml:"model,omitempty"`
}

// Citation is a sourced reference attached to an entry
type Citation struct {
	ID     string       `json:"id" yaml:"id"`
	Type   CitationType `json:"type" yaml:"type"`
	Title  string       `json:"title" yaml:"title"`
	Source string       `json:"source" yaml:"source"`
	Year   int          `json:"year" yaml:"year"`
	URL    string       `json:"url,omitempty" yaml:"url,omitempty"`
}

// CrossReference is a directed, typed link to another entry.
// Slug is the full id of the target (domain/subdomain/entry-slug).
type CrossReference struct {
	Slug         string           `json:"slug" yaml:"slug"`
	Relationship RelationshipType `json:"relationship" yaml:"relationship"`
}

// Parameter is a named quantitative assertion with its own confidence rating
type Parameter struct {
	Name       string          `json:"name" yaml:"name"`
	Value      *float64        `json:"value" yaml:"value"`
	Unit       string          `json:"unit" yaml:"unit"`
	Confidence ConfidenceLevel `json:"confidence" yaml:"confidence"`
}

// Val returns the parameter value, or 0 when the value is missing
func (p Parameter) Val() float64 {
	if p.Value == nil {
		return 0
	}
	return *p.Value
}

// KnowledgeEntry is a single knowledge-base document.
// The loader guarantees all slice fields are non-nil.
type KnowledgeEntry struct {
	ID              string           `json:"id" yaml:"id"`
	Title           string           `json:"title" yaml:"title"`
	Domain          Domain           `json:"domain" yaml:"domain"`
	Subdomain       string           `json:"subdomain" yaml:"subdomain"`
	KEDL            KEDLLevel        `json:"kedl" yaml:"kedl"`
	Confidence      ConfidenceLevel  `json:"confidence" yaml:"confidence"`
	Status          EntryStatus      `json:"status" yaml:"status"`
	Created         string           `json:"created" yaml:"created"`
	Updated         string           `json:"updated" yaml:"updated"`
	Authors         []Author         `json:"authors" yaml:"authors"`
	EntryType       EntryType        `json:"entry_type" yaml:"entry_type"`
	Tags            []string         `json:"tags" yaml:"tags"`
	Summary         string           `json:"summary" yaml:"summary"`
	Citations       []Citation       `json:"citations" yaml:"citations"`
	CrossReferences []CrossReference `json:"cross_references" yaml:"cross_references"`
	OpenQuestions   []string         `json:"open_questions" yaml:"open_questions"`
	Assumptions     []string         `json:"assumptions" yaml:"assumptions"`
	Parameters      []Parameter      `json:"parameters" yaml:"parameters"`
	Content         string           `json:"content" yaml:"-"`
	Slug            string           `json:"slug" yaml:"-"`
}

// FullID returns the path-derived identifier "domain/slug"
func (e *KnowledgeEntry) FullID() string {
	return string(e.Domain) + "/" + e.Slug
}
