package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/n0roo/akn-kit/internal/knowledge"
	"gopkg.in/yaml.v3"
)

// Content section directories under the vault root
const (
	KnowledgeDir = "knowledge"
	StoriesDir   = "stories"
	BlogDir      = "blog"
	PagesDir     = "pages"
)

// DomainMetaFile is the per-domain taxonomy definition file name
const DomainMetaFile = "_domain.yaml"

// Loader reads markdown documents with YAML frontmatter from a vault.
// Unparseable files are skipped with a stderr diagnostic; a bad file
// never aborts the walk.
type Loader struct {
	vaultPath string
}

// NewLoader creates a loader rooted at vaultPath
func NewLoader(vaultPath string) *Loader {
	return &Loader{vaultPath: vaultPath}
}

// Entries returns all published knowledge entries, newest first.
// Draft and superseded entries are excluded. All slice fields of the
// returned entries are non-nil.
func (l *Loader) Entries() ([]knowledge.KnowledgeEntry, error) {
	var entries []knowledge.KnowledgeEntry

	for _, domain := range knowledge.Domains {
		domainDir := filepath.Join(l.vaultPath, KnowledgeDir, string(domain))
		files, err := findMarkdownFiles(domainDir)
		if err != nil {
			return nil, fmt.Errorf("%s 탐색 실패: %w", domainDir, err)
		}

		for _, path := range files {
			entry, err := l.parseEntry(path, domain)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[content] skip %s: %v\n", path, err)
				continue
			}
			if entry.Status != knowledge.StatusPublished {
				continue
			}
			entries = append(entries, *entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Updated > entries[j].Updated
	})
	return entries, nil
}

// AllEntries returns every parseable entry regardless of status,
// for internal review tooling.
func (l *Loader) AllEntries() ([]knowledge.KnowledgeEntry, error) {
	var entries []knowledge.KnowledgeEntry

	for _, domain := range knowledge.Domains {
		domainDir := filepath.Join(l.vaultPath, KnowledgeDir, string(domain))
		files, err := findMarkdownFiles(domainDir)
		if err != nil {
			return nil, fmt.Errorf("%s 탐색 실패: %w", domainDir, err)
		}
		for _, path := range files {
			entry, err := l.parseEntry(path, domain)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[content] skip %s: %v\n", path, err)
				continue
			}
			entries = append(entries, *entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Updated > entries[j].Updated
	})
	return entries, nil
}

// parseEntry parses one knowledge entry file. The slug is derived from
// the file path relative to the domain directory.
func (l *Loader) parseEntry(path string, domain knowledge.Domain) (*knowledge.KnowledgeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("파일 읽기 실패: %w", err)
	}

	fm, body, err := splitFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	var entry knowledge.KnowledgeEntry
	if err := yaml.Unmarshal([]byte(fm), &entry); err != nil {
		return nil, fmt.Errorf("frontmatter 파싱 실패: %w", err)
	}

	domainDir := filepath.Join(l.vaultPath, KnowledgeDir, string(domain))
	rel, err := filepath.Rel(domainDir, path)
	if err != nil {
		return nil, err
	}

	entry.Domain = domain
	entry.Content = strings.TrimSpace(body)
	entry.Slug = filepath.ToSlash(strings.TrimSuffix(rel, ".md"))
	normalizeEntry(&entry)
	return &entry, nil
}

// normalizeEntry guarantees slice fields are empty, never nil, so the
// validation engine only ever sees "empty" vs "populated".
func normalizeEntry(e *knowledge.KnowledgeEntry) {
	if e.Authors == nil {
		e.Authors = []knowledge.Author{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.Citations == nil {
		e.Citations = []knowledge.Citation{}
	}
	if e.CrossReferences == nil {
		e.CrossReferences = []knowledge.CrossReference{}
	}
	if e.OpenQuestions == nil {
		e.OpenQuestions = []string{}
	}
	if e.Assumptions == nil {
		e.Assumptions = []string{}
	}
	if e.Parameters == nil {
		e.Parameters = []knowledge.Parameter{}
	}
}

// DomainMetas loads every domain's _domain.yaml. Domains without a
// taxonomy file are skipped.
func (l *Loader) DomainMetas() ([]knowledge.DomainMeta, error) {
	var metas []knowledge.DomainMeta
	for _, domain := range knowledge.Domains {
		meta, err := l.DomainMeta(domain)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		metas = append(metas, *meta)
	}
	return metas, nil
}

// DomainMeta loads a single domain's taxonomy definition
func (l *Loader) DomainMeta(domain knowledge.Domain) (*knowledge.DomainMeta, error) {
	path := filepath.Join(l.vaultPath, KnowledgeDir, string(domain), DomainMetaFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta knowledge.DomainMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s 파싱 실패: %w", path, err)
	}
	if meta.Slug == "" {
		meta.Slug = domain
	}
	if meta.Subdomains == nil {
		meta.Subdomains = []knowledge.SubdomainMeta{}
	}
	return &meta, nil
}

// Stories returns all stories ordered by their declared series order
func (l *Loader) Stories() ([]knowledge.Story, error) {
	files, err := findMarkdownFiles(filepath.Join(l.vaultPath, StoriesDir))
	if err != nil {
		return nil, err
	}

	var stories []knowledge.Story
	for _, path := range files {
		var story knowledge.Story
		body, err := parseFrontmatterInto(path, &story)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[content] skip %s: %v\n", path, err)
			continue
		}
		story.Content = body
		story.Slug = strings.TrimSuffix(filepath.Base(path), ".md")
		if story.Characters == nil {
			story.Characters = []string{}
		}
		if story.Themes == nil {
			story.Themes = []string{}
		}
		stories = append(stories, story)
	}

	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].Order < stories[j].Order
	})
	return stories, nil
}

// BlogPosts returns all blog posts, newest first
func (l *Loader) BlogPosts() ([]knowledge.BlogPost, error) {
	files, err := findMarkdownFiles(filepath.Join(l.vaultPath, BlogDir))
	if err != nil {
		return nil, err
	}

	var posts []knowledge.BlogPost
	for _, path := range files {
		var post knowledge.BlogPost
		body, err := parseFrontmatterInto(path, &post)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[content] skip %s: %v\n", path, err)
			continue
		}
		post.Content = body
		post.Slug = strings.TrimSuffix(filepath.Base(path), ".md")
		if post.Tags == nil {
			post.Tags = []string{}
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Published > posts[j].Published
	})
	return posts, nil
}

// Pages returns all standalone pages
func (l *Loader) Pages() ([]knowledge.Page, error) {
	files, err := findMarkdownFiles(filepath.Join(l.vaultPath, PagesDir))
	if err != nil {
		return nil, err
	}

	var pages []knowledge.Page
	for _, path := range files {
		var page knowledge.Page
		body, err := parseFrontmatterInto(path, &page)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[content] skip %s: %v\n", path, err)
			continue
		}
		page.Content = body
		page.Slug = strings.TrimSuffix(filepath.Base(path), ".md")
		pages = append(pages, page)
	}
	return pages, nil
}

// parseFrontmatterInto reads a markdown file, unmarshals its
// frontmatter into out, and returns the trimmed body.
func parseFrontmatterInto(path string, out interface{}) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("파일 읽기 실패: %w", err)
	}

	fm, body, err := splitFrontmatter(string(data))
	if err != nil {
		return "", err
	}
	if err := yaml.Unmarshal([]byte(fm), out); err != nil {
		return "", fmt.Errorf("frontmatter 파싱 실패: %w", err)
	}
	return strings.TrimSpace(body), nil
}

// splitFrontmatter splits a document into its YAML frontmatter and body
func splitFrontmatter(content string) (string, string, error) {
	if !strings.HasPrefix(content, "---") {
		return "", "", fmt.Errorf("frontmatter 없음")
	}
	parts := strings.SplitN(content[3:], "---", 2)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("frontmatter 구분자 없음")
	}
	return parts[0], parts[1], nil
}

// findMarkdownFiles recursively collects .md files under dir, sorted
// for deterministic load order. A missing dir yields no files.
func findMarkdownFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
