package validate

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

func fptr(v float64) *float64 { return &v }

// 완전한 테스트 항목 생성 헬퍼. 품질 경고가 나오지 않도록 모든
// 필드를 채운다.
func makeEntry(domain knowledge.Domain, slug string) knowledge.KnowledgeEntry {
	return knowledge.KnowledgeEntry{
		ID:         string(domain) + "/" + slug,
		Title:      "Test Entry",
		Domain:     domain,
		Subdomain:  strings.Split(slug, "/")[0],
		KEDL:       200,
		Confidence: 3,
		Status:     knowledge.StatusPublished,
		Created:    "2026-01-01",
		Updated:    "2026-02-01",
		Authors: []knowledge.Author{
			{ID: "kim", Type: knowledge.AuthorHuman},
		},
		EntryType: knowledge.EntryAnalysis,
		Tags:      []string{"test"},
		Summary:   "A compact summary.",
		Citations: []knowledge.Citation{
			{ID: "c1", Type: knowledge.CitationPeerReviewed, Title: "Source", Source: "Journal", Year: 2020, URL: "https://example.org/paper"},
		},
		CrossReferences: []knowledge.CrossReference{},
		OpenQuestions:   []string{"What about scale?"},
		Assumptions:     []string{"Steady state."},
		Parameters: []knowledge.Parameter{
			{Name: "floor_area_m2", Value: fptr(1000), Unit: "m2", Confidence: 3},
		},
		Slug: slug,
	}
}

func makeDomains() []knowledge.DomainMeta {
	metas := make([]knowledge.DomainMeta, 0, len(knowledge.Domains))
	for _, d := range knowledge.Domains {
		metas = append(metas, knowledge.DomainMeta{
			Name: knowledge.DomainNames[d],
			Slug: d,
			Subdomains: []knowledge.SubdomainMeta{
				{Slug: "core", Name: "Core"},
				{Slug: "aux", Name: "Aux"},
			},
		})
	}
	return metas
}

// 두 항목이 서로 참조하면 고아도 깨진 링크도 없어야 한다
func TestRunCleanCorpus(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	b := makeEntry(knowledge.DomainEnergy, "core/wind")
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: b.FullID(), Relationship: knowledge.RelInforms},
	}
	b.CrossReferences = []knowledge.CrossReference{
		{Slug: a.FullID(), Relationship: knowledge.RelInforms},
	}

	report := Run([]knowledge.KnowledgeEntry{a, b}, makeDomains())

	if report.Errors != 0 {
		t.Fatalf("오류가 없어야 함: %+v", findBySeverity(report, SeverityError))
	}
	if report.Warnings != 0 {
		t.Fatalf("경고가 없어야 함: %+v", findBySeverity(report, SeverityWarning))
	}
	if report.TotalEntries != 2 {
		t.Errorf("total_entries = %d, want 2", report.TotalEntries)
	}
	if report.Summary.CrossReferences.Broken != 0 {
		t.Errorf("깨진 참조 수 = %d, want 0", report.Summary.CrossReferences.Broken)
	}
	if report.Summary.Orphans.Count != 0 {
		t.Errorf("고아 항목 수 = %d, want 0", report.Summary.Orphans.Count)
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	report := Run(nil, nil)

	if report.TotalEntries != 0 {
		t.Errorf("total_entries = %d, want 0", report.TotalEntries)
	}
	if report.Issues == nil {
		t.Error("issues는 빈 슬라이스여야 함 (nil 금지)")
	}
	if report.Errors != 0 || report.Warnings != 0 || report.Info != 0 {
		t.Errorf("빈 코퍼스에 이슈 발생: %+v", report.Issues)
	}
}

func TestBrokenCrossReference(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: "energy-systems/core/nonexistent", Relationship: knowledge.RelInforms},
	}

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	issue := findMessage(report, "Broken cross-reference")
	if issue == nil {
		t.Fatal("깨진 참조 경고가 없음")
	}
	if issue.Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning", issue.Severity)
	}
	if report.Summary.CrossReferences.Broken != 1 {
		t.Errorf("깨진 참조 수 = %d, want 1", report.Summary.CrossReferences.Broken)
	}
}

func TestSelfReferenceIsError(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: a.FullID(), Relationship: knowledge.RelInforms},
	}

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	issue := findMessage(report, "Entry references itself")
	if issue == nil {
		t.Fatal("자기 참조 오류가 없음")
	}
	if issue.Severity != SeverityError {
		t.Errorf("severity = %s, want error", issue.Severity)
	}
}

func TestInvalidEnums(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.Domain = "not-a-domain"
	a.KEDL = 250
	a.Confidence = 9
	a.ID = "not-a-domain/core/solar"

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	for _, want := range []string{"Invalid domain", "Invalid KEDL level: 250", "Invalid confidence level: 9"} {
		if findMessage(report, want) == nil {
			t.Errorf("%q 오류가 없음", want)
		}
	}
}

func TestMissingParameterValue(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.Parameters = []knowledge.Parameter{
		{Name: "height_m", Value: nil, Unit: "m", Confidence: 3},
	}

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	issue := findMessage(report, "missing value")
	if issue == nil {
		t.Fatal("값 누락 오류가 없음")
	}
	if issue.Severity != SeverityError {
		t.Errorf("severity = %s, want error", issue.Severity)
	}
}

func TestParameterConfidenceExceedsEntry(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.Confidence = 2
	a.Parameters = []knowledge.Parameter{
		{Name: "height_m", Value: fptr(4), Unit: "m", Confidence: 4},
	}

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	if findMessage(report, "exceeds entry confidence") == nil {
		t.Fatal("파라미터 신뢰도 초과 경고가 없음")
	}
}

func TestOrphanDetection(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	b := makeEntry(knowledge.DomainEnergy, "core/wind")
	// a -> b 단방향: a는 고아, b는 아님
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: b.FullID(), Relationship: knowledge.RelInforms},
	}
	b.CrossReferences = []knowledge.CrossReference{
		{Slug: a.FullID(), Relationship: knowledge.RelInforms},
	}
	c := makeEntry(knowledge.DomainUrban, "core/plaza")
	c.CrossReferences = []knowledge.CrossReference{
		{Slug: a.FullID(), Relationship: knowledge.RelInforms},
	}

	report := Run([]knowledge.KnowledgeEntry{a, b, c}, makeDomains())

	if report.Summary.Orphans.Count != 1 {
		t.Fatalf("고아 항목 수 = %d, want 1 (%v)", report.Summary.Orphans.Count, report.Summary.Orphans.Entries)
	}
	if report.Summary.Orphans.Entries[0] != c.FullID() {
		t.Errorf("고아 항목 = %s, want %s", report.Summary.Orphans.Entries[0], c.FullID())
	}
}

func TestParameterValueConflict(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	b := makeEntry(knowledge.DomainCompute, "core/dc")
	b.ID = b.FullID()
	a.Parameters = []knowledge.Parameter{
		{Name: "grid_capacity_mw", Value: fptr(500), Unit: "MW", Confidence: 3},
	}
	b.Parameters = []knowledge.Parameter{
		{Name: "grid_capacity_mw", Value: fptr(800), Unit: "MW", Confidence: 2},
	}

	report := Run([]knowledge.KnowledgeEntry{a, b}, makeDomains())

	issue := findMessage(report, "conflicting values across entries")
	if issue == nil {
		t.Fatal("파라미터 충돌 경고가 없음")
	}
	if !strings.Contains(issue.Details, " vs. ") {
		t.Errorf("details에 충돌 양쪽이 없음: %s", issue.Details)
	}
	if !strings.Contains(issue.Details, a.FullID()) || !strings.Contains(issue.Details, b.FullID()) {
		t.Errorf("details에 두 항목 id가 없음: %s", issue.Details)
	}
}

func TestParameterUnitVariance(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	b := makeEntry(knowledge.DomainEnergy, "core/wind")
	a.Parameters = []knowledge.Parameter{
		{Name: "tower_height", Value: fptr(120), Unit: "m", Confidence: 3},
	}
	b.Parameters = []knowledge.Parameter{
		{Name: "tower_height", Value: fptr(394), Unit: "ft", Confidence: 3},
	}
	a.CrossReferences = []knowledge.CrossReference{{Slug: b.FullID(), Relationship: knowledge.RelInforms}}
	b.CrossReferences = []knowledge.CrossReference{{Slug: a.FullID(), Relationship: knowledge.RelInforms}}

	report := Run([]knowledge.KnowledgeEntry{a, b}, makeDomains())

	issue := findMessage(report, "appears with different units")
	if issue == nil {
		t.Fatal("단위 불일치 info가 없음")
	}
	if issue.Severity != SeverityInfo {
		t.Errorf("severity = %s, want info", issue.Severity)
	}
}

func TestTargetPopulationInvariant(t *testing.T) {
	a := makeEntry(knowledge.DomainUrban, "core/housing")
	b := makeEntry(knowledge.DomainInstitutional, "core/gov")
	a.Parameters = []knowledge.Parameter{
		{Name: "target_population", Value: fptr(10000), Unit: "people", Confidence: 3},
	}
	b.Parameters = []knowledge.Parameter{
		{Name: "target_population", Value: fptr(12000), Unit: "people", Confidence: 3},
	}

	report := Run([]knowledge.KnowledgeEntry{a, b}, makeDomains())

	issue := findMessage(report, "Critical: target_population differs")
	if issue == nil {
		t.Fatal("target_population 불변식 오류가 없음")
	}
	if issue.Severity != SeverityError {
		t.Errorf("severity = %s, want error", issue.Severity)
	}
	if issue.EntryID != GlobalEntryID {
		t.Errorf("entry_id = %s, want %s", issue.EntryID, GlobalEntryID)
	}
}

func TestComputePowerBound(t *testing.T) {
	a := makeEntry(knowledge.DomainCompute, "core/dc")
	b := makeEntry(knowledge.DomainEnergy, "core/plant")
	a.Parameters = []knowledge.Parameter{
		{Name: "compute_power_gw", Value: fptr(3.5), Unit: "GW", Confidence: 3},
	}
	b.Parameters = []knowledge.Parameter{
		{Name: "total_power_gw", Value: fptr(2), Unit: "GW", Confidence: 3},
	}

	report := Run([]knowledge.KnowledgeEntry{a, b}, makeDomains())

	issue := findMessage(report, "exceeds total power generation")
	if issue == nil {
		t.Fatal("전력 상한 불변식 오류가 없음")
	}
	if issue.Severity != SeverityError {
		t.Errorf("severity = %s, want error", issue.Severity)
	}
}

func TestKEDLReadiness100(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.KEDL = 100

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	if findMessage(report, "ready to advance to 200") == nil {
		t.Fatal("KEDL 100 승급 후보 info가 없음")
	}
	if len(report.Summary.KEDL.ReadyToAdvance) != 1 {
		t.Errorf("ready_to_advance = %v", report.Summary.KEDL.ReadyToAdvance)
	}
}

func TestKEDLBlockedByMissingDependency(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: "energy-systems/core/future-entry", Relationship: knowledge.RelDependsOn},
	}

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	issue := findMessage(report, "KEDL advancement blocked")
	if issue == nil {
		t.Fatal("승급 차단 info가 없음")
	}
	if !strings.Contains(issue.Details, "future-entry") {
		t.Errorf("details에 누락 의존성이 없음: %s", issue.Details)
	}
	if len(report.Summary.KEDL.Blocked) != 1 {
		t.Errorf("blocked = %v", report.Summary.KEDL.Blocked)
	}
}

func TestKEDLReadiness200(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.Content = "Derived from the plant sizing methodology in the cited studies."
	a.Citations = []knowledge.Citation{
		{ID: "c1", Type: knowledge.CitationPeerReviewed, Title: "A", Source: "J", Year: 2019, URL: "https://example.org/a"},
		{ID: "c2", Type: knowledge.CitationStandard, Title: "B", Source: "ISO", Year: 2021},
		{ID: "c3", Type: knowledge.CitationProjectData, Title: "C", Source: "Survey", Year: 2024},
	}
	a.Parameters = []knowledge.Parameter{
		{Name: "capacity_mw", Value: fptr(500), Unit: "MW", Confidence: 3},
		{Name: "uptime_pct", Value: fptr(97), Unit: "%", Confidence: 2},
	}

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	if findMessage(report, "ready to advance to 300") == nil {
		t.Fatal("KEDL 200 승급 후보 info가 없음")
	}
	if len(report.Summary.KEDL.ReadyToAdvance) != 1 {
		t.Errorf("ready_to_advance = %v", report.Summary.KEDL.ReadyToAdvance)
	}

	// 근거 언어가 없으면 후보에서 빠진다
	b := makeEntry(knowledge.DomainEnergy, "core/wind")
	b.Citations = a.Citations
	b.Parameters = a.Parameters
	b.Content = "Plain description without rigor language."

	report = Run([]knowledge.KnowledgeEntry{b}, makeDomains())
	if findMessage(report, "ready to advance to 300") != nil {
		t.Fatal("근거 언어 없는 항목이 승급 후보로 나옴")
	}
}

// 의존성 차단과 승급 준비는 서로 독립적인 신호다
func TestKEDL200ReadyAndBlockedTogether(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.Content = "Derived from a detailed methodology with full calculations."
	a.Citations = []knowledge.Citation{
		{ID: "c1", Type: knowledge.CitationPeerReviewed, Title: "A", Source: "J", Year: 2019, URL: "https://example.org/a"},
		{ID: "c2", Type: knowledge.CitationStandard, Title: "B", Source: "ISO", Year: 2021},
		{ID: "c3", Type: knowledge.CitationProjectData, Title: "C", Source: "Survey", Year: 2024},
	}
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: "energy-systems/core/future-entry", Relationship: knowledge.RelDependsOn},
	}

	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	readyIssue := findMessage(report, "ready to advance to 300")
	blockedIssue := findMessage(report, "KEDL advancement blocked")
	if readyIssue == nil {
		t.Fatal("승급 후보 info가 없음")
	}
	if blockedIssue == nil {
		t.Fatal("승급 차단 info가 없음")
	}

	// 후보 info가 차단 info보다 먼저 나와야 한다
	readyIdx, blockedIdx := -1, -1
	for i, issue := range report.Issues {
		if strings.Contains(issue.Message, "ready to advance to 300") {
			readyIdx = i
		}
		if strings.Contains(issue.Message, "KEDL advancement blocked") {
			blockedIdx = i
		}
	}
	if readyIdx > blockedIdx {
		t.Errorf("이슈 순서 불일치: ready=%d, blocked=%d", readyIdx, blockedIdx)
	}

	if len(report.Summary.KEDL.ReadyToAdvance) != 1 || report.Summary.KEDL.ReadyToAdvance[0] != a.FullID() {
		t.Errorf("ready_to_advance = %v", report.Summary.KEDL.ReadyToAdvance)
	}
	if len(report.Summary.KEDL.Blocked) != 1 || report.Summary.KEDL.Blocked[0] != a.FullID() {
		t.Errorf("blocked = %v", report.Summary.KEDL.Blocked)
	}
}

func TestKEDLReadiness300(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	a.KEDL = 300
	a.Confidence = 4
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: "urban-design-livability/core/plaza", Relationship: knowledge.RelInforms},
		{Slug: "ai-compute-infrastructure/core/dc", Relationship: knowledge.RelInforms},
		{Slug: "structural-engineering/core/frame", Relationship: knowledge.RelInforms},
	}
	b := makeEntry(knowledge.DomainUrban, "core/plaza")
	c := makeEntry(knowledge.DomainCompute, "core/dc")
	d := makeEntry(knowledge.DomainStructural, "core/frame")
	for _, e := range []*knowledge.KnowledgeEntry{&b, &c, &d} {
		e.CrossReferences = []knowledge.CrossReference{
			{Slug: a.FullID(), Relationship: knowledge.RelInforms},
		}
	}

	report := Run([]knowledge.KnowledgeEntry{a, b, c, d}, makeDomains())

	if findMessage(report, "ready to advance to 350") == nil {
		t.Fatal("KEDL 300 승급 후보 info가 없음")
	}
}

// 동일 입력이면 타임스탬프를 제외하고 결과가 동일해야 한다
func TestRunDeterministic(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	b := makeEntry(knowledge.DomainUrban, "core/plaza")
	a.CrossReferences = []knowledge.CrossReference{
		{Slug: "energy-systems/core/missing", Relationship: knowledge.RelDependsOn},
	}
	a.Parameters = append(a.Parameters, knowledge.Parameter{Name: "target_population", Value: fptr(100), Unit: "people", Confidence: 2})
	b.Parameters = append(b.Parameters, knowledge.Parameter{Name: "target_population", Value: fptr(200), Unit: "people", Confidence: 2})

	entries := []knowledge.KnowledgeEntry{a, b}
	domains := makeDomains()

	first := Run(entries, domains)
	second := Run(entries, domains)

	if !reflect.DeepEqual(first.Issues, second.Issues) {
		t.Error("이슈 목록이 실행 간 동일하지 않음")
	}
	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Error("요약이 실행 간 동일하지 않음")
	}
}

func TestReportJSONShape(t *testing.T) {
	a := makeEntry(knowledge.DomainEnergy, "core/solar")
	report := Run([]knowledge.KnowledgeEntry{a}, makeDomains())

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("직렬화 실패: %v", err)
	}
	for _, key := range []string{`"timestamp"`, `"total_entries"`, `"cross_references"`, `"ready_to_advance"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON에 %s 키가 없음", key)
		}
	}
}

func findMessage(report *Report, substr string) *Issue {
	for i := range report.Issues {
		if strings.Contains(report.Issues[i].Message, substr) {
			return &report.Issues[i]
		}
	}
	return nil
}

func findBySeverity(report *Report, severity Severity) []Issue {
	var out []Issue
	for _, issue := range report.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}
