package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/n0roo/akn-kit/internal/content"
	"github.com/n0roo/akn-kit/internal/knowledge"
	"github.com/n0roo/akn-kit/internal/stats"
)

// ContentIndex is the full vault snapshot consumed by search, the
// analytics queries, and any downstream API surface. Regenerated from
// source on every index run, never edited in place.
type ContentIndex struct {
	GeneratedAt    string                     `json:"generated_at"`
	Entries        []knowledge.KnowledgeEntry `json:"entries"`
	Domains        []knowledge.DomainMeta     `json:"domains"`
	DomainStats    []stats.DomainStats        `json:"domain_stats"`
	Stories        []knowledge.Story          `json:"stories"`
	BlogPosts      []knowledge.BlogPost       `json:"blog_posts"`
	Pages          []knowledge.Page           `json:"pages"`
	AggregateStats stats.AggregateStats       `json:"aggregate_stats"`
}

// Build reads the whole vault through the loader and assembles the
// content index with stats precomputed.
func Build(loader *content.Loader) (*ContentIndex, error) {
	entries, err := loader.Entries()
	if err != nil {
		return nil, fmt.Errorf("엔트리 로드 실패: %w", err)
	}
	domains, err := loader.DomainMetas()
	if err != nil {
		return nil, fmt.Errorf("도메인 메타 로드 실패: %w", err)
	}
	stories, err := loader.Stories()
	if err != nil {
		return nil, fmt.Errorf("스토리 로드 실패: %w", err)
	}
	posts, err := loader.BlogPosts()
	if err != nil {
		return nil, fmt.Errorf("블로그 로드 실패: %w", err)
	}
	pages, err := loader.Pages()
	if err != nil {
		return nil, fmt.Errorf("페이지 로드 실패: %w", err)
	}

	return &ContentIndex{
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		Entries:        entries,
		Domains:        domains,
		DomainStats:    stats.ComputeDomainStats(entries, domains),
		Stories:        stories,
		BlogPosts:      posts,
		Pages:          pages,
		AggregateStats: stats.ComputeAggregateStats(entries, domains),
	}, nil
}

// WriteFile persists the index as indented JSON
func (ix *ContentIndex) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("디렉토리 생성 실패: %w", err)
	}
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return fmt.Errorf("인덱스 직렬화 실패: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("인덱스 저장 실패: %w", err)
	}
	return nil
}

// ReadFile loads a previously generated index
func ReadFile(path string) (*ContentIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("인덱스 읽기 실패: %w", err)
	}
	var ix ContentIndex
	if err := json.Unmarshal(data, &ix); err != nil {
		return nil, fmt.Errorf("인덱스 파싱 실패: %w", err)
	}
	return &ix, nil
}
