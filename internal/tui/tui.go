package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n0roo/akn-kit/internal/config"
	"github.com/n0roo/akn-kit/internal/db"
	"github.com/n0roo/akn-kit/internal/history"
	"github.com/n0roo/akn-kit/internal/index"
	"github.com/n0roo/akn-kit/internal/knowledge"
	"github.com/n0roo/akn-kit/internal/stats"
	"github.com/n0roo/akn-kit/internal/validate"
)

// Tab represents a dashboard tab
type Tab int

const (
	TabOverview Tab = iota
	TabIssues
	TabDomains
	TabKEDL
	TabHistory
)

func (t Tab) String() string {
	return []string{"Overview", "Issues", "Domains", "KEDL", "History"}[t]
}

// Model is the report browser model
type Model struct {
	// Config
	vaultPath string

	// State
	currentTab  Tab
	width       int
	height      int
	ready       bool
	lastRefresh time.Time
	err         error

	// Issue list state
	cursor    int
	sevFilter string

	// Data
	report      *validate.Report
	domainStats []stats.DomainStats
	aggregate   stats.AggregateStats
	runs        []history.Run

	// Components
	spinner spinner.Model
}

// tickMsg is sent periodically to refresh data
type tickMsg time.Time

// dataMsg carries refreshed data
type dataMsg struct {
	report      *validate.Report
	domainStats []stats.DomainStats
	aggregate   stats.AggregateStats
	runs        []history.Run
	err         error
}

// NewModel creates a new report browser model
func NewModel(vaultPath string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		vaultPath:  vaultPath,
		currentTab: TabOverview,
		spinner:    s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.refreshData,
		tickEvery(10*time.Second),
	)
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshData reloads the report, the content index, and run history
func (m Model) refreshData() tea.Msg {
	var data dataMsg

	raw, err := os.ReadFile(config.ReportJSONPath(m.vaultPath))
	if err != nil {
		data.err = fmt.Errorf("리포트 읽기 실패: %w", err)
		return data
	}
	var report validate.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		data.err = fmt.Errorf("리포트 파싱 실패: %w", err)
		return data
	}
	data.report = &report

	if ix, err := index.ReadFile(config.ContentIndexPath(m.vaultPath)); err == nil {
		data.domainStats = ix.DomainStats
		data.aggregate = ix.AggregateStats
	}

	if database, err := db.Open(config.HistoryDBPath(m.vaultPath)); err == nil {
		histSvc := history.NewService(database)
		if runs, _, err := histSvc.List(history.Filter{Limit: 10}); err == nil {
			data.runs = runs
		}
		database.Close()
	}

	return data
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			m.currentTab = TabOverview
		case "2":
			m.currentTab = TabIssues
		case "3":
			m.currentTab = TabDomains
		case "4":
			m.currentTab = TabKEDL
		case "5":
			m.currentTab = TabHistory
		case "tab":
			m.currentTab = Tab((int(m.currentTab) + 1) % 5)
		case "shift+tab":
			m.currentTab = Tab((int(m.currentTab) + 4) % 5)
		case "r":
			return m, m.refreshData
		case "up", "k":
			if m.currentTab == TabIssues && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.currentTab == TabIssues && m.cursor < len(m.filteredIssues())-1 {
				m.cursor++
			}
		case "e":
			m.toggleFilter("error")
		case "w":
			m.toggleFilter("warning")
		case "i":
			m.toggleFilter("info")
		case "a":
			m.sevFilter = ""
			m.cursor = 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tickMsg:
		return m, tea.Batch(
			m.refreshData,
			tickEvery(10*time.Second),
		)

	case dataMsg:
		m.report = msg.report
		m.domainStats = msg.domainStats
		m.aggregate = msg.aggregate
		m.runs = msg.runs
		m.err = msg.err
		m.lastRefresh = time.Now()
		if m.cursor >= len(m.filteredIssues()) {
			m.cursor = 0
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) toggleFilter(severity string) {
	if m.currentTab != TabIssues {
		return
	}
	if m.sevFilter == severity {
		m.sevFilter = ""
	} else {
		m.sevFilter = severity
	}
	m.cursor = 0
}

func (m Model) filteredIssues() []validate.Issue {
	if m.report == nil {
		return nil
	}
	if m.sevFilter == "" {
		return m.report.Issues
	}
	var filtered []validate.Issue
	for _, issue := range m.report.Issues {
		if string(issue.Severity) == m.sevFilter {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %v", m.err)))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("  Run `akn validate` first."))
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
		return b.String()
	}
	if m.report == nil {
		b.WriteString(fmt.Sprintf("  %s Loading report...", m.spinner.View()))
		return b.String()
	}

	switch m.currentTab {
	case TabOverview:
		b.WriteString(m.renderOverviewTab())
	case TabIssues:
		b.WriteString(m.renderIssuesTab())
	case TabDomains:
		b.WriteString(m.renderDomainsTab())
	case TabKEDL:
		b.WriteString(m.renderKEDLTab())
	case TabHistory:
		b.WriteString(m.renderHistoryTab())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	title := "📐 AKN Validation Dashboard"
	refresh := fmt.Sprintf("Last refresh: %s", m.lastRefresh.Format("15:04:05"))

	headerWidth := m.width
	if headerWidth < 60 {
		headerWidth = 60
	}

	left := lipgloss.NewStyle().Bold(true).Render(title)
	right := lipgloss.NewStyle().Foreground(mutedColor).Render(refresh)

	gap := headerWidth - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 0 {
		gap = 0
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#2D3748")).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1).
		Width(headerWidth).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTabs() string {
	var tabs []string
	for i := 0; i < 5; i++ {
		tab := Tab(i)
		style := tabStyle
		if tab == m.currentTab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("[%d]%s", i+1, tab.String())))
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderFooter() string {
	help := "  [1-5] Switch tabs  [Tab] Next  [r] Refresh  [q] Quit"
	if m.currentTab == TabIssues {
		help = "  [j/k] Move  [e/w/i] Filter severity  [a] All  [r] Refresh  [q] Quit"
	}
	return helpStyle.Render(help)
}

func (m Model) renderOverviewTab() string {
	var b strings.Builder
	r := m.report

	status := statusOKStyle.Render("CLEAN")
	if r.Errors > 0 {
		status = errorStyle.Render("ISSUES FOUND")
	} else if r.Warnings > 0 {
		status = warnStyle.Render("HEALTHY (warnings only)")
	}

	statusBox := boxStyle.Width(35).Render(
		titleStyle.Render("🩺 Status") + "\n" +
			status + "\n" +
			fmt.Sprintf("Entries: %d", r.TotalEntries),
	)

	countBox := boxStyle.Width(35).Render(
		titleStyle.Render("🔎 Issues") + "\n" +
			fmt.Sprintf("Errors:   %s\n", errorStyle.Render(fmt.Sprintf("%d", r.Errors))) +
			fmt.Sprintf("Warnings: %s\n", warnStyle.Render(fmt.Sprintf("%d", r.Warnings))) +
			fmt.Sprintf("Info:     %s", infoStyle.Render(fmt.Sprintf("%d", r.Info))),
	)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, statusBox, "  ", countBox))
	b.WriteString("\n\n")

	s := r.Summary
	refBox := boxStyle.Width(35).Render(
		titleStyle.Render("🔗 Cross-references") + "\n" +
			fmt.Sprintf("Valid:  %d/%d\n", s.CrossReferences.Valid, s.CrossReferences.Total) +
			fmt.Sprintf("Broken: %d\n", s.CrossReferences.Broken) +
			fmt.Sprintf("Orphans: %d", s.Orphans.Count),
	)

	completeness := 0.0
	total := s.Schema.Complete + s.Schema.Incomplete
	if total > 0 {
		completeness = float64(s.Schema.Complete) / float64(total)
	}
	schemaBox := boxStyle.Width(35).Render(
		titleStyle.Render("📋 Schema") + "\n" +
			fmt.Sprintf("Complete: %d/%d\n", s.Schema.Complete, total) +
			RenderProgressBar(completeness, 25),
	)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, refBox, "  ", schemaBox))

	return b.String()
}

func (m Model) renderIssuesTab() string {
	var b strings.Builder

	label := "Issues"
	if m.sevFilter != "" {
		label = fmt.Sprintf("Issues [%s]", m.sevFilter)
	}
	b.WriteString(titleStyle.Render("🔎 " + label))
	b.WriteString("\n\n")

	issues := m.filteredIssues()
	if len(issues) == 0 {
		b.WriteString(statusMutedStyle.Render("  No issues"))
		return b.String()
	}

	// Visible window around the cursor
	maxRows := m.height - 12
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(issues) {
		end = len(issues)
	}

	for i := start; i < end; i++ {
		issue := issues[i]
		line := fmt.Sprintf("%s [%s] %s: %s",
			SeverityIcon(string(issue.Severity)), issue.Category, issue.EntryID, issue.Message)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(line))
			b.WriteString("\n")
			if issue.Details != "" {
				b.WriteString(subtitleStyle.Render("    " + issue.Details))
				b.WriteString("\n")
			}
		} else {
			b.WriteString(normalItemStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(statusMutedStyle.Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(issues))))

	return b.String()
}

func (m Model) renderDomainsTab() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🌐 Domains"))
	b.WriteString("\n\n")

	if len(m.domainStats) == 0 {
		b.WriteString(statusMutedStyle.Render("  No index data"))
		b.WriteString("\n\n")
		b.WriteString(subtitleStyle.Render("  Run: akn index"))
		return b.String()
	}

	maxEntries := 0
	for _, d := range m.domainStats {
		if d.EntryCount > maxEntries {
			maxEntries = d.EntryCount
		}
	}

	for _, d := range m.domainStats {
		ratio := 0.0
		if maxEntries > 0 {
			ratio = float64(d.EntryCount) / float64(maxEntries)
		}
		b.WriteString(fmt.Sprintf("  %-28s %3d %s  CL %.2f\n",
			d.Name, d.EntryCount, RenderProgressBar(ratio, 20), d.AverageConfidence))
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf(
		"  Balance index: %.2f   Schema completeness: %.1f%%   Orphan rate: %.1f%%",
		m.aggregate.DomainBalanceIndex, m.aggregate.SchemaCompleteness, m.aggregate.OrphanEntryRate)))

	return b.String()
}

func (m Model) renderKEDLTab() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📈 KEDL Advancement"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("  Levels"))
	b.WriteString("\n")
	for _, level := range knowledge.KEDLLevels {
		count := m.aggregate.KEDLDistribution[strconv.Itoa(int(level))]
		line := fmt.Sprintf("    %d %-12s %d", level, knowledge.KEDLInfo[level].Name, count)
		if count == 0 {
			b.WriteString(statusMutedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	kedl := m.report.Summary.KEDL
	b.WriteString(subtitleStyle.Render("  Ready to advance"))
	b.WriteString("\n")
	if len(kedl.ReadyToAdvance) == 0 {
		b.WriteString(statusMutedStyle.Render("    none"))
		b.WriteString("\n")
	}
	for _, id := range kedl.ReadyToAdvance {
		b.WriteString(fmt.Sprintf("    %s %s\n", statusOKStyle.Render("↑"), id))
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Blocked"))
	b.WriteString("\n")
	if len(kedl.Blocked) == 0 {
		b.WriteString(statusMutedStyle.Render("    none"))
		b.WriteString("\n")
	}
	for _, id := range kedl.Blocked {
		b.WriteString(fmt.Sprintf("    %s %s\n", warnStyle.Render("■"), id))
	}

	return b.String()
}

func (m Model) renderHistoryTab() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🕘 Recent Runs"))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		b.WriteString(statusMutedStyle.Render("  No recorded runs"))
		return b.String()
	}

	for _, run := range m.runs {
		icon := statusOKStyle.Render("✓")
		if !run.Passed {
			icon = errorStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s  E:%d W:%d I:%d\n",
			icon,
			run.StartedAt.Format("2006-01-02 15:04"),
			shortID(run.ID),
			run.Errors, run.Warnings, run.Info))
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the report browser
func Run(vaultPath string) error {
	p := tea.NewProgram(
		NewModel(vaultPath),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
