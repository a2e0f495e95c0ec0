package stats

import (
	"math"
	"strconv"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// DomainStats is the per-domain rollup exposed on dashboards
type DomainStats struct {
	Slug                    knowledge.Domain `json:"slug"`
	Name                    string           `json:"name"`
	Color                   string           `json:"color"`
	EntryCount              int              `json:"entry_count"`
	KEDLDistribution        map[string]int   `json:"kedl_distribution"`
	ConfidenceDistribution  map[string]int   `json:"confidence_distribution"`
	AverageConfidence       float64          `json:"average_confidence"`
	OpenQuestionCount       int              `json:"open_question_count"`
	SubdomainCount          int              `json:"subdomain_count"`
	LastUpdated             string           `json:"last_updated"`
}

// AggregateStats is the corpus-wide rollup. All percentage and ratio
// fields are rounded to 2 decimal places.
type AggregateStats struct {
	TotalEntries                   int            `json:"total_entries"`
	TotalCitations                 int            `json:"total_citations"`
	TotalCrossReferences           int            `json:"total_cross_references"`
	TotalOpenQuestions             int            `json:"total_open_questions"`
	TotalParameters                int            `json:"total_parameters"`
	KEDLDistribution               map[string]int `json:"kedl_distribution"`
	ConfidenceDistribution         map[string]int `json:"confidence_distribution"`
	AverageCitationDensity         float64        `json:"average_citation_density"`
	CrossDomainReferencePercentage float64        `json:"cross_domain_reference_percentage"`
	DomainBalanceIndex             float64        `json:"domain_balance_index"`
	SchemaCompleteness             float64        `json:"schema_completeness"`
	OrphanEntryRate                float64        `json:"orphan_entry_rate"`
}

// ComputeDomainStats computes one DomainStats per declared domain, in
// declaration order. Pure function of its inputs.
//
// LastUpdated is the lexicographic max of the entries' updated strings;
// callers must ensure ISO-8601 dates for correct ordering.
func ComputeDomainStats(entries []knowledge.KnowledgeEntry, domainMeta []knowledge.DomainMeta) []DomainStats {
	metaBySlug := make(map[knowledge.Domain]*knowledge.DomainMeta, len(domainMeta))
	for i := range domainMeta {
		metaBySlug[domainMeta[i].Slug] = &domainMeta[i]
	}

	result := make([]DomainStats, 0, len(knowledge.Domains))
	for _, domain := range knowledge.Domains {
		// Built-in display tables cover domains without a _domain.yaml
		ds := DomainStats{
			Slug:                   domain,
			Name:                   knowledge.DomainNames[domain],
			Color:                  knowledge.DomainColors[domain],
			KEDLDistribution:       map[string]int{},
			ConfidenceDistribution: map[string]int{},
		}
		if meta := metaBySlug[domain]; meta != nil {
			if meta.Name != "" {
				ds.Name = meta.Name
			}
			if meta.Color != "" {
				ds.Color = meta.Color
			}
			ds.SubdomainCount = len(meta.Subdomains)
		}

		totalConf := 0
		for i := range entries {
			e := &entries[i]
			if e.Domain != domain {
				continue
			}
			ds.EntryCount++
			ds.KEDLDistribution[strconv.Itoa(int(e.KEDL))]++
			ds.ConfidenceDistribution[strconv.Itoa(int(e.Confidence))]++
			totalConf += int(e.Confidence)
			ds.OpenQuestionCount += len(e.OpenQuestions)
			if e.Updated > ds.LastUpdated {
				ds.LastUpdated = e.Updated
			}
		}
		if ds.EntryCount > 0 {
			ds.AverageConfidence = float64(totalConf) / float64(ds.EntryCount)
		}

		result = append(result, ds)
	}
	return result
}

// ComputeAggregateStats computes corpus-wide statistics. Pure function
// of its inputs; with zero entries every ratio is 0, never NaN.
func ComputeAggregateStats(entries []knowledge.KnowledgeEntry, domainMeta []knowledge.DomainMeta) AggregateStats {
	agg := AggregateStats{
		TotalEntries:           len(entries),
		KEDLDistribution:       map[string]int{},
		ConfidenceDistribution: map[string]int{},
	}

	crossDomainRefs := 0
	for i := range entries {
		e := &entries[i]
		agg.KEDLDistribution[strconv.Itoa(int(e.KEDL))]++
		agg.ConfidenceDistribution[strconv.Itoa(int(e.Confidence))]++
		agg.TotalCitations += len(e.Citations)
		agg.TotalCrossReferences += len(e.CrossReferences)
		agg.TotalOpenQuestions += len(e.OpenQuestions)
		agg.TotalParameters += len(e.Parameters)

		for _, ref := range e.CrossReferences {
			if refDomain(ref.Slug) != string(e.Domain) {
				crossDomainRefs++
			}
		}
	}

	if agg.TotalEntries > 0 {
		agg.AverageCitationDensity = round2(float64(agg.TotalCitations) / float64(agg.TotalEntries))
	}
	if agg.TotalCrossReferences > 0 {
		agg.CrossDomainReferencePercentage = round2(float64(crossDomainRefs) / float64(agg.TotalCrossReferences) * 100)
	}

	// Domain balance: coefficient of variation of entry counts across
	// all declared domains.
	counts := make([]float64, len(knowledge.Domains))
	for i, domain := range knowledge.Domains {
		for j := range entries {
			if entries[j].Domain == domain {
				counts[i]++
			}
		}
	}
	agg.DomainBalanceIndex = round2(coefficientOfVariation(counts))

	// Schema completeness: % of declared (domain, subdomain) slots with
	// at least one entry.
	populated := make(map[string]bool)
	for i := range entries {
		populated[string(entries[i].Domain)+"/"+entries[i].Subdomain] = true
	}
	declared := 0
	filled := 0
	for _, meta := range domainMeta {
		for _, sub := range meta.Subdomains {
			declared++
			if populated[string(meta.Slug)+"/"+sub.Slug] {
				filled++
			}
		}
	}
	if declared > 0 {
		agg.SchemaCompleteness = round2(float64(filled) / float64(declared) * 100)
	}

	// Orphan rate: % of entries whose id never appears as a target.
	inbound := make(map[string]bool)
	for i := range entries {
		for _, ref := range entries[i].CrossReferences {
			inbound[ref.Slug] = true
		}
	}
	orphans := 0
	for i := range entries {
		if !inbound[entries[i].FullID()] {
			orphans++
		}
	}
	if agg.TotalEntries > 0 {
		agg.OrphanEntryRate = round2(float64(orphans) / float64(agg.TotalEntries) * 100)
	}

	return agg
}

// coefficientOfVariation returns population stddev / mean, 0 when the
// mean is 0.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// refDomain returns the domain segment of a cross-reference slug
func refDomain(slug string) string {
	for i := 0; i < len(slug); i++ {
		if slug[i] == '/' {
			return slug[:i]
		}
	}
	return slug
}
