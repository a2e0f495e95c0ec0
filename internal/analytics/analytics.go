package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcboeker/go-duckdb/v2"
)

// AnalyticsDB wraps DuckDB for ad-hoc queries over the generated
// content index. DuckDB reads the JSON directly; nothing is imported
// into tables.
type AnalyticsDB struct {
	conn *sql.DB
	path string
}

// Config holds analytics configuration
type Config struct {
	DBPath string // DuckDB 파일 경로
}

// DomainBreakdown is a per-domain aggregate row
type DomainBreakdown struct {
	Domain        string  `json:"domain"`
	Entries       int     `json:"entries"`
	AvgConfidence float64 `json:"avg_confidence"`
	AvgKEDL       float64 `json:"avg_kedl"`
	Parameters    int     `json:"parameters"`
}

// ParameterRow is one flattened parameter assertion
type ParameterRow struct {
	EntryID    string  `json:"entry_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Confidence int     `json:"confidence"`
}

// KEDLBucket is one row of the corpus-wide KEDL distribution
type KEDLBucket struct {
	Level   int `json:"level"`
	Entries int `json:"entries"`
}

// New creates a new AnalyticsDB instance
func New(cfg Config) (*AnalyticsDB, error) {
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("디렉토리 생성 실패: %w", err)
	}

	connector, err := duckdb.NewConnector(cfg.DBPath, nil)
	if err != nil {
		return nil, fmt.Errorf("DuckDB 열기 실패: %w", err)
	}

	return &AnalyticsDB{conn: sql.OpenDB(connector), path: cfg.DBPath}, nil
}

// Close closes the database connection
func (a *AnalyticsDB) Close() error {
	return a.conn.Close()
}

// DomainBreakdowns aggregates the content index per domain
func (a *AnalyticsDB) DomainBreakdowns(ctx context.Context, indexPath string) ([]DomainBreakdown, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT
			e.domain,
			COUNT(*) AS entries,
			ROUND(AVG(e.confidence), 2) AS avg_confidence,
			ROUND(AVG(e.kedl), 1) AS avg_kedl,
			COALESCE(SUM(len(e.parameters)), 0) AS parameters
		FROM (SELECT unnest(entries) AS e FROM read_json_auto('%s'))
		GROUP BY e.domain
		ORDER BY entries DESC, e.domain
	`, indexPath)

	rows, err := a.conn.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("도메인 집계 실패: %w", err)
	}
	defer rows.Close()

	var results []DomainBreakdown
	for rows.Next() {
		var b DomainBreakdown
		var entries, params int64
		if err := rows.Scan(&b.Domain, &entries, &b.AvgConfidence, &b.AvgKEDL, &params); err != nil {
			continue
		}
		b.Entries = int(entries)
		b.Parameters = int(params)
		results = append(results, b)
	}

	return results, nil
}

// Parameters flattens every parameter assertion in the index, filtered
// by an optional name substring
func (a *AnalyticsDB) Parameters(ctx context.Context, indexPath, name string) ([]ParameterRow, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT e.id, p.name, COALESCE(p.value, 0), COALESCE(p.unit, ''), p.confidence
		FROM (SELECT unnest(entries) AS e FROM read_json_auto('%s')),
		     UNNEST(e.parameters) AS t(p)
		WHERE lower(p.name) LIKE lower('%%%s%%')
		ORDER BY p.name, e.id
	`, indexPath, name)

	rows, err := a.conn.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("파라미터 조회 실패: %w", err)
	}
	defer rows.Close()

	var results []ParameterRow
	for rows.Next() {
		var r ParameterRow
		var confidence int64
		if err := rows.Scan(&r.EntryID, &r.Name, &r.Value, &r.Unit, &confidence); err != nil {
			continue
		}
		r.Confidence = int(confidence)
		results = append(results, r)
	}

	return results, nil
}

// KEDLDistribution returns the corpus-wide KEDL histogram
func (a *AnalyticsDB) KEDLDistribution(ctx context.Context, indexPath string) ([]KEDLBucket, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT e.kedl, COUNT(*)
		FROM (SELECT unnest(entries) AS e FROM read_json_auto('%s'))
		GROUP BY e.kedl
		ORDER BY e.kedl
	`, indexPath)

	rows, err := a.conn.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("KEDL 분포 조회 실패: %w", err)
	}
	defer rows.Close()

	var results []KEDLBucket
	for rows.Next() {
		var level, count int64
		if err := rows.Scan(&level, &count); err != nil {
			continue
		}
		results = append(results, KEDLBucket{Level: int(level), Entries: int(count)})
	}

	return results, nil
}

// OpenQuestionCounts returns entries ranked by open question count
func (a *AnalyticsDB) OpenQuestionCounts(ctx context.Context, indexPath string, limit int) (map[string]int, error) {
	if limit == 0 {
		limit = 20
	}

	sqlQuery := fmt.Sprintf(`
		SELECT e.id, len(e.open_questions) AS questions
		FROM (SELECT unnest(entries) AS e FROM read_json_auto('%s'))
		WHERE len(e.open_questions) > 0
		ORDER BY questions DESC, e.id
		LIMIT %d
	`, indexPath, limit)

	rows, err := a.conn.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("미해결 질문 조회 실패: %w", err)
	}
	defer rows.Close()

	results := make(map[string]int)
	for rows.Next() {
		var id string
		var count int64
		if err := rows.Scan(&id, &count); err != nil {
			continue
		}
		results[id] = int(count)
	}

	return results, nil
}

// Exec runs an arbitrary statement, for maintenance tasks
func (a *AnalyticsDB) Exec(ctx context.Context, query string) error {
	_, err := a.conn.ExecContext(ctx, query)
	return err
}
