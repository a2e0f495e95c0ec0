package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/n0roo/akn-kit/internal/db"
	"github.com/n0roo/akn-kit/internal/validate"
)

// Run is one recorded validation run
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	TotalEntries int       `json:"total_entries"`
	Errors       int       `json:"errors"`
	Warnings     int       `json:"warnings"`
	Info         int       `json:"info"`
	Strict       bool      `json:"strict"`
	Passed       bool      `json:"passed"`
}

// Filter represents query filters for run history
type Filter struct {
	FailedOnly bool      `json:"failed_only,omitempty"`
	Since      time.Time `json:"since,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	Offset     int       `json:"offset,omitempty"`
}

// Service handles validation run history
type Service struct {
	db *db.DB
}

// NewService creates a new history service
func NewService(database *db.DB) *Service {
	return &Service{db: database}
}

// Record stores a completed validation run and returns its id
func (s *Service) Record(report *validate.Report, strict bool) (string, error) {
	passed := report.Errors == 0 && (!strict || report.Warnings == 0)

	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("리포트 직렬화 실패: %w", err)
	}

	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("트랜잭션 시작 실패: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, total_entries, errors, warnings, info, strict, passed, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, report.TotalEntries, report.Errors, report.Warnings, report.Info,
		boolInt(strict), boolInt(passed), string(data))
	if err != nil {
		return "", fmt.Errorf("실행 기록 실패: %w", err)
	}

	for _, issue := range report.Issues {
		_, err = tx.Exec(`
			INSERT INTO run_issues (run_id, severity, category, entry_id, message, details)
			VALUES (?, ?, ?, ?, ?, ?)
		`, runID, string(issue.Severity), string(issue.Category), issue.EntryID,
			issue.Message, issue.Details)
		if err != nil {
			return "", fmt.Errorf("이슈 기록 실패: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("트랜잭션 커밋 실패: %w", err)
	}
	return runID, nil
}

// List returns runs matching the filter, newest first, plus the total
// match count
func (s *Service) List(filter Filter) ([]Run, int, error) {
	query := `
		SELECT id, started_at, total_entries, errors, warnings, info, strict, passed
		FROM runs
		WHERE 1=1
	`
	countQuery := `SELECT COUNT(*) FROM runs WHERE 1=1`

	var args []interface{}
	var conditions []string

	if filter.FailedOnly {
		conditions = append(conditions, "passed = 0")
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, filter.Since.Format("2006-01-02 15:04:05"))
	}

	if len(conditions) > 0 {
		condStr := " AND " + strings.Join(conditions, " AND ")
		query += condStr
		countQuery += condStr
	}

	var total int
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("카운트 조회 실패: %w", err)
	}

	query += " ORDER BY started_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else {
		query += " LIMIT 50"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("실행 조회 실패: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, *run)
	}

	return runs, total, nil
}

// Get returns one run with its full report
func (s *Service) Get(id string) (*Run, *validate.Report, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, total_entries, errors, warnings, info, strict, passed, COALESCE(report_json, '')
		FROM runs WHERE id = ?
	`, id)

	var run Run
	var strict, passed int
	var reportJSON string
	err := row.Scan(&run.ID, &run.StartedAt, &run.TotalEntries, &run.Errors,
		&run.Warnings, &run.Info, &strict, &passed, &reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("실행을 찾을 수 없음: %s", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("실행 조회 실패: %w", err)
	}
	run.Strict = strict != 0
	run.Passed = passed != 0

	var report validate.Report
	if reportJSON != "" {
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return &run, nil, fmt.Errorf("리포트 파싱 실패: %w", err)
		}
	}

	return &run, &report, nil
}

// Latest returns the most recent run, or nil when no runs exist
func (s *Service) Latest() (*Run, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, total_entries, errors, warnings, info, strict, passed
		FROM runs ORDER BY started_at DESC LIMIT 1
	`)
	if err != nil {
		return nil, fmt.Errorf("실행 조회 실패: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	return scanRun(rows)
}

// Issues returns the recorded issues of a run, optionally filtered by
// severity
func (s *Service) Issues(runID, severity string) ([]validate.Issue, error) {
	query := `
		SELECT severity, category, entry_id, message, COALESCE(details, '')
		FROM run_issues WHERE run_id = ?
	`
	args := []interface{}{runID}
	if severity != "" {
		query += " AND severity = ?"
		args = append(args, severity)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("이슈 조회 실패: %w", err)
	}
	defer rows.Close()

	var issues []validate.Issue
	for rows.Next() {
		var issue validate.Issue
		var sev, cat string
		if err := rows.Scan(&sev, &cat, &issue.EntryID, &issue.Message, &issue.Details); err != nil {
			return nil, err
		}
		issue.Severity = validate.Severity(sev)
		issue.Category = validate.Category(cat)
		issues = append(issues, issue)
	}

	return issues, nil
}

// GetStats returns history statistics
func (s *Service) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total, passed int
	s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&total)
	s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE passed = 1`).Scan(&passed)
	stats["total_runs"] = total
	stats["passed_runs"] = passed

	rows, err := s.db.Query(`
		SELECT category, COUNT(*)
		FROM run_issues
		GROUP BY category
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCategory := make(map[string]int)
	for rows.Next() {
		var c string
		var count int
		rows.Scan(&c, &count)
		byCategory[c] = count
	}
	stats["issues_by_category"] = byCategory

	return stats, nil
}

// ExportCSV exports runs to CSV format
func (s *Service) ExportCSV(filter Filter) (string, error) {
	runs, _, err := s.List(filter)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("id,started_at,total_entries,errors,warnings,info,strict,passed\n")
	for _, r := range runs {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%d,%d,%t,%t\n",
			r.ID,
			r.StartedAt.Format(time.RFC3339),
			r.TotalEntries,
			r.Errors,
			r.Warnings,
			r.Info,
			r.Strict,
			r.Passed,
		))
	}

	return sb.String(), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var strict, passed int
	err := row.Scan(&run.ID, &run.StartedAt, &run.TotalEntries, &run.Errors,
		&run.Warnings, &run.Info, &strict, &passed)
	if err != nil {
		return nil, err
	}
	run.Strict = strict != 0
	run.Passed = passed != 0
	return &run, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
