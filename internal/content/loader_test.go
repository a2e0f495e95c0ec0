package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// 테스트용 vault 디렉토리 생성 헬퍼
func setupTestVault(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "akn-test-*")
	if err != nil {
		t.Fatalf("임시 디렉토리 생성 실패: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("디렉토리 생성 실패: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("파일 쓰기 실패: %v", err)
	}
}

func entryDoc(title, status, updated string) string {
	return `---
id: energy-systems/generation/` + title + `
title: ` + title + `
subdomain: generation
kedl: 200
confidence: 3
status: ` + status + `
created: "2026-01-10"
updated: "` + updated + `"
authors:
  - id: kim
    type: human
entry_type: analysis
summary: Short summary.
tags:
  - power
---

# ` + title + `

Body text.
`
}

func TestEntriesPublishedOnly(t *testing.T) {
	vault := setupTestVault(t)
	base := filepath.Join(vault, KnowledgeDir, "energy-systems", "generation")
	writeFile(t, filepath.Join(base, "solar.md"), entryDoc("solar", "published", "2026-02-01"))
	writeFile(t, filepath.Join(base, "draft-wind.md"), entryDoc("draft-wind", "draft", "2026-02-05"))
	writeFile(t, filepath.Join(base, "old-coal.md"), entryDoc("old-coal", "superseded", "2026-01-01"))

	entries, err := NewLoader(vault).Entries()
	if err != nil {
		t.Fatalf("로드 실패: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("published 항목 수 = %d, want 1", len(entries))
	}
	if entries[0].Slug != "generation/solar" {
		t.Errorf("slug = %s, want generation/solar", entries[0].Slug)
	}
	if entries[0].Domain != knowledge.DomainEnergy {
		t.Errorf("domain = %s", entries[0].Domain)
	}
	if entries[0].Content == "" {
		t.Error("본문이 비어 있음")
	}
}

func TestEntriesSortedNewestFirst(t *testing.T) {
	vault := setupTestVault(t)
	base := filepath.Join(vault, KnowledgeDir, "energy-systems", "generation")
	writeFile(t, filepath.Join(base, "older.md"), entryDoc("older", "published", "2026-01-15"))
	writeFile(t, filepath.Join(base, "newer.md"), entryDoc("newer", "published", "2026-03-20"))

	entries, err := NewLoader(vault).Entries()
	if err != nil {
		t.Fatalf("로드 실패: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("항목 수 = %d, want 2", len(entries))
	}
	if entries[0].Slug != "generation/newer" {
		t.Errorf("첫 항목 = %s, want generation/newer", entries[0].Slug)
	}
}

func TestAllEntriesIncludesDrafts(t *testing.T) {
	vault := setupTestVault(t)
	base := filepath.Join(vault, KnowledgeDir, "energy-systems", "generation")
	writeFile(t, filepath.Join(base, "solar.md"), entryDoc("solar", "published", "2026-02-01"))
	writeFile(t, filepath.Join(base, "wip.md"), entryDoc("wip", "draft", "2026-02-05"))

	entries, err := NewLoader(vault).AllEntries()
	if err != nil {
		t.Fatalf("로드 실패: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("전체 항목 수 = %d, want 2", len(entries))
	}
}

func TestHiddenAndMetaFilesSkipped(t *testing.T) {
	vault := setupTestVault(t)
	base := filepath.Join(vault, KnowledgeDir, "energy-systems")
	writeFile(t, filepath.Join(base, "generation", "solar.md"), entryDoc("solar", "published", "2026-02-01"))
	writeFile(t, filepath.Join(base, "_domain.yaml"), "name: Energy Systems\n")
	writeFile(t, filepath.Join(base, "generation", "_template.md"), entryDoc("template", "published", "2026-02-01"))
	writeFile(t, filepath.Join(base, "generation", ".hidden.md"), entryDoc("hidden", "published", "2026-02-01"))
	writeFile(t, filepath.Join(base, "generation", "notes.txt"), "not markdown")

	entries, err := NewLoader(vault).Entries()
	if err != nil {
		t.Fatalf("로드 실패: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("항목 수 = %d, want 1", len(entries))
	}
}

func TestMalformedFrontmatterSkipped(t *testing.T) {
	vault := setupTestVault(t)
	base := filepath.Join(vault, KnowledgeDir, "energy-systems", "generation")
	writeFile(t, filepath.Join(base, "good.md"), entryDoc("good", "published", "2026-02-01"))
	writeFile(t, filepath.Join(base, "bad.md"), "no frontmatter here\n")
	writeFile(t, filepath.Join(base, "broken.md"), "---\ntitle: [unclosed\n---\nbody\n")

	entries, err := NewLoader(vault).Entries()
	if err != nil {
		t.Fatalf("로드에서 에러 반환됨: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("항목 수 = %d, want 1", len(entries))
	}
}

func TestNormalizeNonNilSlices(t *testing.T) {
	vault := setupTestVault(t)
	base := filepath.Join(vault, KnowledgeDir, "energy-systems", "generation")
	// frontmatter에 리스트 필드가 하나도 없는 최소 항목
	writeFile(t, filepath.Join(base, "bare.md"), `---
title: bare
status: published
updated: "2026-02-01"
---

Body.
`)

	entries, err := NewLoader(vault).Entries()
	if err != nil {
		t.Fatalf("로드 실패: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("항목 수 = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Authors == nil || e.Tags == nil || e.Citations == nil ||
		e.CrossReferences == nil || e.OpenQuestions == nil ||
		e.Assumptions == nil || e.Parameters == nil {
		t.Error("슬라이스 필드에 nil이 남아 있음")
	}
}

func TestDomainMetaLoading(t *testing.T) {
	vault := setupTestVault(t)
	writeFile(t, filepath.Join(vault, KnowledgeDir, "energy-systems", DomainMetaFile), `name: Energy Systems
description: Power generation and distribution.
color: "#F59E0B"
icon: bolt
subdomains:
  - slug: generation
    name: Generation
  - slug: storage
    name: Storage
`)

	loader := NewLoader(vault)
	meta, err := loader.DomainMeta(knowledge.DomainEnergy)
	if err != nil {
		t.Fatalf("도메인 메타 로드 실패: %v", err)
	}
	if meta.Slug != knowledge.DomainEnergy {
		t.Errorf("slug = %s, want %s", meta.Slug, knowledge.DomainEnergy)
	}
	if len(meta.Subdomains) != 2 {
		t.Errorf("서브도메인 수 = %d, want 2", len(meta.Subdomains))
	}

	metas, err := loader.DomainMetas()
	if err != nil {
		t.Fatalf("도메인 메타 목록 로드 실패: %v", err)
	}
	if len(metas) != 1 {
		t.Errorf("메타 수 = %d, want 1 (_domain.yaml이 없는 도메인은 제외)", len(metas))
	}
}

func TestStoriesOrderedBySeries(t *testing.T) {
	vault := setupTestVault(t)
	writeFile(t, filepath.Join(vault, StoriesDir, "second.md"), `---
title: Second
order: 2
---

Later.
`)
	writeFile(t, filepath.Join(vault, StoriesDir, "first.md"), `---
title: First
order: 1
---

Earlier.
`)

	stories, err := NewLoader(vault).Stories()
	if err != nil {
		t.Fatalf("스토리 로드 실패: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("스토리 수 = %d, want 2", len(stories))
	}
	if stories[0].Slug != "first" {
		t.Errorf("첫 스토리 = %s, want first", stories[0].Slug)
	}
}

func TestMissingDirsYieldEmpty(t *testing.T) {
	vault := setupTestVault(t)

	loader := NewLoader(vault)
	entries, err := loader.Entries()
	if err != nil {
		t.Fatalf("빈 vault 로드 실패: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("항목 수 = %d, want 0", len(entries))
	}
	posts, err := loader.BlogPosts()
	if err != nil {
		t.Fatalf("빈 블로그 로드 실패: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("포스트 수 = %d, want 0", len(posts))
	}
}
