package knowledge

// SubdomainMeta is one slot of a domain's sub-taxonomy
type SubdomainMeta struct {
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// DomainMeta is the static per-domain taxonomy, loaded once per run
// from the domain's _domain.yaml and immutable afterwards.
type DomainMeta struct {
	Name        string          `json:"name" yaml:"name"`
	Slug        Domain          `json:"slug" yaml:"slug"`
	Description string          `json:"description" yaml:"description"`
	Color       string          `json:"color" yaml:"color"`
	Icon        string          `json:"icon" yaml:"icon"`
	Subdomains  []SubdomainMeta `json:"subdomains" yaml:"subdomains"`
}

// LevelInfo is display metadata for a KEDL or confidence level
type LevelInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// KEDLInfo maps each KEDL level to its display name and meaning
var KEDLInfo = map[KEDLLevel]LevelInfo{
	100: {Name: "Conceptual", Description: "Qualitative, no numbers, identifies design space"},
	200: {Name: "Schematic", Description: "Approximate parameters with major assumptions"},
	300: {Name: "Preliminary", Description: "Quantified with engineering basis, suitable for feasibility"},
	350: {Name: "Developed", Description: "Detailed calculations, cross-domain interfaces defined"},
	400: {Name: "Construction", Description: "Specification-grade"},
	500: {Name: "As-Built", Description: "Reflects actual constructed/deployed configuration"},
}

// ConfidenceInfo maps each confidence level to its display name and meaning
var ConfidenceInfo = map[ConfidenceLevel]LevelInfo{
	1: {Name: "Conjectured", Description: "Reasonable hypothesis without supporting evidence"},
	2: {Name: "Estimated", Description: "Order-of-magnitude based on analogous systems"},
	3: {Name: "Calculated", Description: "Engineering calculation with stated methodology"},
	4: {Name: "Verified", Description: "Independently verified by qualified reviewer"},
	5: {Name: "Validated", Description: "Confirmed by physical test or operational data"},
}

// DomainNames maps domain slugs to display names
var DomainNames = map[Domain]string{
	DomainStructural:    "Structural Engineering",
	DomainEnergy:        "Energy Systems",
	DomainEnvironmental: "Environmental Systems",
	DomainMechanical:    "Mechanical & Electrical",
	DomainCompute:       "AI & Compute Infrastructure",
	DomainInstitutional: "Institutional Design",
	DomainConstruction:  "Construction & Logistics",
	DomainUrban:         "Urban Design & Livability",
}

// DomainColors maps domain slugs to dashboard accent colors
var DomainColors = map[Domain]string{
	DomainStructural:    "#E63946",
	DomainEnergy:        "#F4A261",
	DomainEnvironmental: "#2A9D8F",
	DomainMechanical:    "#457B9D",
	DomainCompute:       "#7B2CBF",
	DomainInstitutional: "#E9C46A",
	DomainConstruction:  "#E76F51",
	DomainUrban:         "#48CAE4",
}

// DomainIcons maps domain slugs to icon names used by dashboards
var DomainIcons = map[Domain]string{
	DomainStructural:    "building",
	DomainEnergy:        "zap",
	DomainEnvironmental: "leaf",
	DomainMechanical:    "settings",
	DomainCompute:       "cpu",
	DomainInstitutional: "scale",
	DomainConstruction:  "hard-hat",
	DomainUrban:         "home",
}
