package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/n0roo/akn-kit/internal/knowledge"
)

// SearchService maintains the SQLite full-text index over knowledge
// entries. The index is derived data; Rebuild recreates it from the
// loaded corpus.
type SearchService struct {
	dbPath string
	db     *sql.DB
}

// SearchResult is one entry hit with its match context
type SearchResult struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Domain     string   `json:"domain"`
	Subdomain  string   `json:"subdomain,omitempty"`
	KEDL       int      `json:"kedl"`
	Confidence int      `json:"confidence"`
	EntryType  string   `json:"entry_type,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Updated    string   `json:"updated,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
}

// SearchOptions narrows a search. Zero values mean no filter.
type SearchOptions struct {
	Domain        string   `json:"domain,omitempty"`
	Subdomain     string   `json:"subdomain,omitempty"`
	EntryType     string   `json:"entry_type,omitempty"`
	KEDLMin       int      `json:"kedl_min,omitempty"`
	ConfidenceMin int      `json:"confidence_min,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

// IndexStats summarizes the current search index
type IndexStats struct {
	TotalEntries int            `json:"total_entries"`
	ByDomain     map[string]int `json:"by_domain"`
	ByType       map[string]int `json:"by_type"`
	ByKEDL       map[string]int `json:"by_kedl"`
	LastIndexed  string         `json:"last_indexed"`
}

// NewSearchService creates a search service backed by the given
// database path
func NewSearchService(dbPath string) *SearchService {
	return &SearchService{dbPath: dbPath}
}

// Open opens the database connection and initializes the schema
func (s *SearchService) Open() error {
	dir := filepath.Dir(s.dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("디렉토리 생성 실패: %w", err)
	}

	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("DB 열기 실패: %w", err)
	}
	s.db = db

	return s.initSchema()
}

// Close closes the database connection
func (s *SearchService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SearchService) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		domain TEXT NOT NULL,
		subdomain TEXT,
		kedl INTEGER NOT NULL,
		confidence INTEGER NOT NULL,
		entry_type TEXT,
		status TEXT,
		summary TEXT,
		updated TEXT,
		indexed_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entry_tags (
		entry_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE,
		PRIMARY KEY (entry_id, tag)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_domain ON entries(domain);
	CREATE INDEX IF NOT EXISTS idx_entries_kedl ON entries(kedl);
	CREATE INDEX IF NOT EXISTS idx_entries_type ON entries(entry_type);
	CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags(tag);

	CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts4(
		id,
		title,
		summary,
		body
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Rebuild drops and reinserts the whole index from the given entries.
// Returns the number of entries indexed.
func (s *SearchService) Rebuild(entries []knowledge.KnowledgeEntry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("트랜잭션 시작 실패: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return 0, err
	}
	if _, err := tx.Exec("DELETE FROM entry_tags"); err != nil {
		return 0, err
	}
	if _, err := tx.Exec("DELETE FROM entries_fts"); err != nil {
		return 0, err
	}

	now := time.Now().Format(time.RFC3339)
	count := 0
	for i := range entries {
		entry := &entries[i]
		id := entry.FullID()

		_, err := tx.Exec(`
			INSERT INTO entries (id, title, domain, subdomain, kedl, confidence, entry_type, status, summary, updated, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, entry.Title, string(entry.Domain), entry.Subdomain, int(entry.KEDL),
			int(entry.Confidence), string(entry.EntryType), string(entry.Status),
			entry.Summary, entry.Updated, now)
		if err != nil {
			return count, fmt.Errorf("엔트리 색인 실패 (%s): %w", id, err)
		}

		body := buildSearchText(entry)
		if _, err := tx.Exec(`
			INSERT INTO entries_fts (id, title, summary, body) VALUES (?, ?, ?, ?)
		`, id, entry.Title, entry.Summary, body); err != nil {
			return count, fmt.Errorf("FTS 색인 실패 (%s): %w", id, err)
		}

		for _, tag := range entry.Tags {
			tx.Exec("INSERT OR IGNORE INTO entry_tags (entry_id, tag) VALUES (?, ?)", id, tag)
		}

		count++
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("트랜잭션 커밋 실패: %w", err)
	}
	return count, nil
}

// buildSearchText concatenates every searchable field of an entry
func buildSearchText(entry *knowledge.KnowledgeEntry) string {
	parts := []string{
		entry.Title,
		entry.Summary,
		entry.Content,
		strings.Join(entry.Tags, " "),
		strings.Join(entry.OpenQuestions, " "),
		strings.Join(entry.Assumptions, " "),
	}
	for _, param := range entry.Parameters {
		parts = append(parts, param.Name)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Search runs a full-text query with optional filters. An empty query
// is a pure filter scan ordered by last update.
func (s *SearchService) Search(query string, opts *SearchOptions) ([]*SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	if opts.Limit == 0 {
		opts.Limit = 20
	}

	var args []interface{}
	var sqlQuery string

	if strings.TrimSpace(query) != "" {
		sqlQuery = `
			SELECT e.id, e.title, e.domain, e.subdomain, e.kedl, e.confidence,
			       e.entry_type, e.summary, e.updated
			FROM entries e
			JOIN entries_fts fts ON e.id = fts.id
			WHERE entries_fts MATCH ?
		`
		args = append(args, buildFTSQuery(query))
	} else {
		sqlQuery = `
			SELECT e.id, e.title, e.domain, e.subdomain, e.kedl, e.confidence,
			       e.entry_type, e.summary, e.updated
			FROM entries e
			WHERE 1=1
		`
	}

	if opts.Domain != "" {
		sqlQuery += " AND e.domain = ?"
		args = append(args, opts.Domain)
	}
	if opts.Subdomain != "" {
		sqlQuery += " AND e.subdomain = ?"
		args = append(args, opts.Subdomain)
	}
	if opts.EntryType != "" {
		sqlQuery += " AND e.entry_type = ?"
		args = append(args, opts.EntryType)
	}
	if opts.KEDLMin > 0 {
		sqlQuery += " AND e.kedl >= ?"
		args = append(args, opts.KEDLMin)
	}
	if opts.ConfidenceMin > 0 {
		sqlQuery += " AND e.confidence >= ?"
		args = append(args, opts.ConfidenceMin)
	}
	if len(opts.Tags) > 0 {
		sqlQuery += " AND e.id IN (SELECT entry_id FROM entry_tags WHERE tag IN (" +
			strings.Repeat("?,", len(opts.Tags)-1) + "?))"
		for _, tag := range opts.Tags {
			args = append(args, tag)
		}
	}

	if strings.TrimSpace(query) == "" {
		sqlQuery += " ORDER BY e.updated DESC"
	}
	sqlQuery += " LIMIT ?"
	args = append(args, opts.Limit)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("검색 실패: %w", err)
	}
	defer rows.Close()

	var results []*SearchResult
	resultIdx := 0
	for rows.Next() {
		var r SearchResult
		var subdomain, entryType, summary, updated sql.NullString

		if err := rows.Scan(&r.ID, &r.Title, &r.Domain, &subdomain, &r.KEDL,
			&r.Confidence, &entryType, &summary, &updated); err != nil {
			continue
		}
		r.Subdomain = subdomain.String
		r.EntryType = entryType.String
		r.Summary = summary.String
		r.Updated = updated.String

		tagRows, _ := s.db.Query("SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY tag", r.ID)
		if tagRows != nil {
			for tagRows.Next() {
				var tag string
				tagRows.Scan(&tag)
				r.Tags = append(r.Tags, tag)
			}
			tagRows.Close()
		}

		r.Score = float64(100 - resultIdx)
		r.Highlights = generateHighlights(query, &r)
		resultIdx++

		results = append(results, &r)
	}

	return results, nil
}

var ftsTermClean = regexp.MustCompile(`[^\w-]`)

// buildFTSQuery turns free text into an FTS prefix query
func buildFTSQuery(query string) string {
	words := strings.Fields(query)
	var parts []string
	for _, word := range words {
		if strings.Contains(word, ":") {
			parts = append(parts, word)
			continue
		}
		word = ftsTermClean.ReplaceAllString(word, "")
		if word != "" {
			parts = append(parts, word+"*")
		}
	}
	return strings.Join(parts, " ")
}

func generateHighlights(query string, r *SearchResult) []string {
	var highlights []string
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}

	titleLower := strings.ToLower(r.Title)
	for _, word := range words {
		if strings.Contains(titleLower, word) {
			highlights = append(highlights, fmt.Sprintf("title: %s", r.Title))
			break
		}
	}

	if r.Summary != "" {
		summaryLower := strings.ToLower(r.Summary)
		for _, word := range words {
			if strings.Contains(summaryLower, word) {
				highlights = append(highlights, fmt.Sprintf("summary: %s", r.Summary))
				break
			}
		}
	}

	return highlights
}

// Stats returns index statistics
func (s *SearchService) Stats() (*IndexStats, error) {
	stats := &IndexStats{
		ByDomain: make(map[string]int),
		ByType:   make(map[string]int),
		ByKEDL:   make(map[string]int),
	}

	s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&stats.TotalEntries)

	rows, _ := s.db.Query("SELECT domain, COUNT(*) FROM entries GROUP BY domain")
	if rows != nil {
		for rows.Next() {
			var d string
			var count int
			rows.Scan(&d, &count)
			stats.ByDomain[d] = count
		}
		rows.Close()
	}

	rows, _ = s.db.Query("SELECT entry_type, COUNT(*) FROM entries WHERE entry_type != '' GROUP BY entry_type")
	if rows != nil {
		for rows.Next() {
			var t string
			var count int
			rows.Scan(&t, &count)
			stats.ByType[t] = count
		}
		rows.Close()
	}

	rows, _ = s.db.Query("SELECT kedl, COUNT(*) FROM entries GROUP BY kedl")
	if rows != nil {
		for rows.Next() {
			var kedl, count int
			rows.Scan(&kedl, &count)
			stats.ByKEDL[fmt.Sprintf("%d", kedl)] = count
		}
		rows.Close()
	}

	var lastIndexed sql.NullString
	s.db.QueryRow("SELECT MAX(indexed_at) FROM entries").Scan(&lastIndexed)
	if lastIndexed.Valid {
		stats.LastIndexed = lastIndexed.String
	}

	return stats, nil
}

// ListTags returns all tags with usage counts
func (s *SearchService) ListTags() (map[string]int, error) {
	tags := make(map[string]int)

	rows, err := s.db.Query("SELECT tag, COUNT(*) FROM entry_tags GROUP BY tag ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tag string
		var count int
		rows.Scan(&tag, &count)
		tags[tag] = count
	}

	return tags, nil
}
