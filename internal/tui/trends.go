package tui

import (
	"fmt"
	"maps"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"athlete-monitor/internal/analysis"
	"athlete-monitor/internal/service"
)

// TrendsModel shows trend labels and pairwise correlations over a window
type TrendsModel struct {
	queryService *service.QueryService
	athleteID    string
	opts         Options
	days         int
	trends       map[string]analysis.TrendSummary
	report       analysis.CorrelationReport
	loading      bool
	err          error
}

// Selectable window lengths in days
var trendWindows = []int{7, 14, 28}

// NewTrendsModel creates a new trends model
func NewTrendsModel(qs *service.QueryService, athleteID string, opts Options) TrendsModel {
	return TrendsModel{
		queryService: qs,
		athleteID:    athleteID,
		opts:         opts,
		days:         qs.HistoryDays(),
		loading:      true,
	}
}

// Init initializes the trends screen
func (m TrendsModel) Init() tea.Cmd {
	return m.loadData
}

type trendsLoadedMsg struct {
	trends map[string]analysis.TrendSummary
	report analysis.CorrelationReport
	err    error
}

func (m TrendsModel) loadData() tea.Msg {
	now := m.opts.Now()
	history, err := m.queryService.History(m.athleteID, now, m.days)
	if err != nil {
		return trendsLoadedMsg{err: err}
	}
	return trendsLoadedMsg{
		trends: analysis.AnalyzeTrends(history),
		report: analysis.Correlate(history),
	}
}

// Update handles messages
func (m TrendsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.trends = msg.trends
		m.report = msg.report
	case tea.KeyMsg:
		switch msg.String() {
		case "w":
			i := slices.Index(trendWindows, m.days)
			m.days = trendWindows[(i+1)%len(trendWindows)]
			m.loading = true
			return m, m.loadData
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the trends screen
func (m TrendsModel) View() string {
	if m.loading {
		return "\n  Loading trends..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	sections := []string{
		m.renderTrends(),
		m.renderCorrelations(),
		statusStyle.Render(fmt.Sprintf("Window: last %d days. Press 'w' to change window, 'r' to refresh", m.days)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TrendsModel) renderTrends() string {
	title := cardTitleStyle.Render("Trends")
	if len(m.trends) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No data in this window"))
	}

	rows := []string{tableHeaderStyle.Render(fmt.Sprintf("%-16s  %-18s  %6s  %9s  %9s  %8s",
		"Metric", "Trend", "Points", "1st half", "2nd half", "Slope"))}
	for _, name := range slices.Sorted(maps.Keys(m.trends)) {
		t := m.trends[name]
		label := fmt.Sprintf("%-18s", t.Label)
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-16s  %s  %6d  %9.1f  %9.1f  %+8.2f",
			truncateName(name, 16), trendStyle(string(t.Label)).Render(label),
			t.Points, t.FirstMean, t.SecondMean, t.Slope)))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func (m TrendsModel) renderCorrelations() string {
	title := cardTitleStyle.Render("Correlations")
	if len(m.report.Pairs) == 0 {
		msg := fmt.Sprintf("Need at least %d days where two metrics were both recorded", analysis.MinCorrelationPoints)
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, msg))
	}

	rows := []string{tableHeaderStyle.Render(fmt.Sprintf("%-16s  %-16s  %6s  %6s  %s",
		"Metric A", "Metric B", "r", "Days", "Strength"))}
	for _, p := range m.report.Pairs {
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-16s  %-16s  %+6.2f  %6d  %s",
			truncateName(p.MetricA, 16), truncateName(p.MetricB, 16), p.R, p.Points,
			trendStyle(string(p.Interpretation)).Render(string(p.Interpretation)))))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
