package stats

import (
	"math"
	"testing"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

func fptr(v float64) *float64 { return &v }

func sampleEntries() []knowledge.KnowledgeEntry {
	return []knowledge.KnowledgeEntry{
		{
			Domain: knowledge.DomainEnergy, Slug: "generation/solar",
			Subdomain: "generation", KEDL: 200, Confidence: 3,
			Updated: "2026-02-10",
			Citations: []knowledge.Citation{
				{ID: "c1"}, {ID: "c2"},
			},
			CrossReferences: []knowledge.CrossReference{
				{Slug: "urban-design-livability/core/greenway", Relationship: knowledge.RelInforms},
				{Slug: "energy-systems/generation/wind", Relationship: knowledge.RelInforms},
			},
			OpenQuestions: []string{"q1", "q2"},
			Parameters: []knowledge.Parameter{
				{Name: "capacity_mw", Value: fptr(500), Unit: "MW", Confidence: 3},
			},
		},
		{
			Domain: knowledge.DomainEnergy, Slug: "generation/wind",
			Subdomain: "generation", KEDL: 300, Confidence: 4,
			Updated:   "2026-03-01",
			Citations: []knowledge.Citation{{ID: "c3"}},
			CrossReferences: []knowledge.CrossReference{
				{Slug: "energy-systems/generation/solar", Relationship: knowledge.RelInforms},
			},
			OpenQuestions: []string{"q3"},
		},
		{
			Domain: knowledge.DomainUrban, Slug: "core/plaza",
			Subdomain: "core", KEDL: 100, Confidence: 2,
			Updated: "2026-01-20",
			CrossReferences: []knowledge.CrossReference{
				{Slug: "energy-systems/generation/solar", Relationship: knowledge.RelDependsOn},
			},
		},
	}
}

func sampleMeta() []knowledge.DomainMeta {
	return []knowledge.DomainMeta{
		{
			Name: "Energy Systems", Slug: knowledge.DomainEnergy, Color: "#F59E0B",
			Subdomains: []knowledge.SubdomainMeta{
				{Slug: "generation", Name: "Generation"},
				{Slug: "storage", Name: "Storage"},
			},
		},
		{
			Name: "Urban Design", Slug: knowledge.DomainUrban, Color: "#10B981",
			Subdomains: []knowledge.SubdomainMeta{
				{Slug: "core", Name: "Core"},
			},
		},
	}
}

func TestComputeDomainStats(t *testing.T) {
	result := ComputeDomainStats(sampleEntries(), sampleMeta())

	if len(result) != len(knowledge.Domains) {
		t.Fatalf("도메인 수 = %d, want %d", len(result), len(knowledge.Domains))
	}
	// 선언 순서 유지 확인
	for i, d := range knowledge.Domains {
		if result[i].Slug != d {
			t.Fatalf("순서 불일치: result[%d] = %s, want %s", i, result[i].Slug, d)
		}
	}

	var energy DomainStats
	for _, ds := range result {
		if ds.Slug == knowledge.DomainEnergy {
			energy = ds
		}
	}
	if energy.EntryCount != 2 {
		t.Errorf("energy 항목 수 = %d, want 2", energy.EntryCount)
	}
	if energy.Name != "Energy Systems" {
		t.Errorf("name = %s", energy.Name)
	}
	if energy.KEDLDistribution["200"] != 1 || energy.KEDLDistribution["300"] != 1 {
		t.Errorf("KEDL 분포 = %v", energy.KEDLDistribution)
	}
	if energy.AverageConfidence != 3.5 {
		t.Errorf("평균 신뢰도 = %v, want 3.5", energy.AverageConfidence)
	}
	if energy.OpenQuestionCount != 3 {
		t.Errorf("미해결 질문 수 = %d, want 3", energy.OpenQuestionCount)
	}
	if energy.LastUpdated != "2026-03-01" {
		t.Errorf("last_updated = %s, want 2026-03-01", energy.LastUpdated)
	}
	if energy.SubdomainCount != 2 {
		t.Errorf("서브도메인 수 = %d, want 2", energy.SubdomainCount)
	}
}

func TestComputeDomainStatsEmptyDomain(t *testing.T) {
	result := ComputeDomainStats(nil, sampleMeta())
	for _, ds := range result {
		if ds.EntryCount != 0 {
			t.Errorf("%s 항목 수 = %d, want 0", ds.Slug, ds.EntryCount)
		}
		if ds.AverageConfidence != 0 {
			t.Errorf("%s 평균 신뢰도 = %v, want 0", ds.Slug, ds.AverageConfidence)
		}
		// 항목이 없으면 갱신일은 빈 문자열이어야 한다 (실행 간 결정성)
		if ds.LastUpdated != "" {
			t.Errorf("%s last_updated = %q, want 빈 문자열", ds.Slug, ds.LastUpdated)
		}
	}
}

// _domain.yaml이 없는 도메인은 내장 표시 테이블로 채워진다
func TestComputeDomainStatsBuiltinFallback(t *testing.T) {
	result := ComputeDomainStats(nil, nil)
	for _, ds := range result {
		if ds.Name != knowledge.DomainNames[ds.Slug] {
			t.Errorf("%s 이름 = %s, want %s", ds.Slug, ds.Name, knowledge.DomainNames[ds.Slug])
		}
		if ds.Color != knowledge.DomainColors[ds.Slug] {
			t.Errorf("%s 색상 = %s, want %s", ds.Slug, ds.Color, knowledge.DomainColors[ds.Slug])
		}
	}
}

func TestComputeAggregateStats(t *testing.T) {
	agg := ComputeAggregateStats(sampleEntries(), sampleMeta())

	if agg.TotalEntries != 3 {
		t.Errorf("total_entries = %d, want 3", agg.TotalEntries)
	}
	if agg.TotalCitations != 3 {
		t.Errorf("total_citations = %d, want 3", agg.TotalCitations)
	}
	if agg.TotalCrossReferences != 4 {
		t.Errorf("total_cross_references = %d, want 4", agg.TotalCrossReferences)
	}
	if agg.TotalParameters != 1 {
		t.Errorf("total_parameters = %d, want 1", agg.TotalParameters)
	}
	if agg.AverageCitationDensity != 1.0 {
		t.Errorf("인용 밀도 = %v, want 1.0", agg.AverageCitationDensity)
	}
	// 교차 도메인 참조 2건 / 전체 4건 = 50%
	if agg.CrossDomainReferencePercentage != 50 {
		t.Errorf("교차 도메인 비율 = %v, want 50", agg.CrossDomainReferencePercentage)
	}
	// 선언된 서브도메인 3곳 중 2곳 채워짐
	if math.Abs(agg.SchemaCompleteness-66.67) > 0.001 {
		t.Errorf("스키마 완성도 = %v, want 66.67", agg.SchemaCompleteness)
	}
	// plaza만 인바운드 참조 없음: 1/3
	if math.Abs(agg.OrphanEntryRate-33.33) > 0.001 {
		t.Errorf("고아 비율 = %v, want 33.33", agg.OrphanEntryRate)
	}
	if agg.DomainBalanceIndex <= 0 {
		t.Errorf("균형 지수 = %v, want > 0", agg.DomainBalanceIndex)
	}
}

func TestComputeAggregateStatsEmpty(t *testing.T) {
	agg := ComputeAggregateStats(nil, nil)

	if agg.TotalEntries != 0 {
		t.Errorf("total_entries = %d, want 0", agg.TotalEntries)
	}
	// 빈 코퍼스에서 NaN이 나오면 안 됨
	for name, v := range map[string]float64{
		"citation_density":  agg.AverageCitationDensity,
		"cross_domain_pct":  agg.CrossDomainReferencePercentage,
		"balance_index":     agg.DomainBalanceIndex,
		"completeness":      agg.SchemaCompleteness,
		"orphan_rate":       agg.OrphanEntryRate,
	} {
		if math.IsNaN(v) || v != 0 {
			t.Errorf("%s = %v, want 0", name, v)
		}
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if cv := coefficientOfVariation([]float64{5, 5, 5, 5}); cv != 0 {
		t.Errorf("균등 분포 CV = %v, want 0", cv)
	}
	if cv := coefficientOfVariation(nil); cv != 0 {
		t.Errorf("빈 입력 CV = %v, want 0", cv)
	}
	cv := coefficientOfVariation([]float64{0, 10})
	if math.Abs(cv-1.0) > 0.001 {
		t.Errorf("CV = %v, want 1.0", cv)
	}
}

func TestRefDomain(t *testing.T) {
	if d := refDomain("energy-systems/generation/solar"); d != "energy-systems" {
		t.Errorf("refDomain = %s", d)
	}
	if d := refDomain("no-slash"); d != "no-slash" {
		t.Errorf("refDomain = %s", d)
	}
}
