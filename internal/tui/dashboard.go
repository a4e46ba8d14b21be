package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"athlete-monitor/internal/assessment"
	"athlete-monitor/internal/service"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	athleteID    string
	opts         Options
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, athleteID string, opts Options) DashboardModel {
	return DashboardModel{
		queryService: qs,
		athleteID:    athleteID,
		opts:         opts,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.Dashboard(m.athleteID, m.opts.Now())
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil {
		return "\n  No data available. Log a session or record an assessment first."
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderWorkloadCard(), "  ", m.renderFitnessCard())
	sections = append(sections, topRow)
	sections = append(sections, m.renderScores())

	if chart := m.renderLoadChart(); chart != "" {
		sections = append(sections, chart)
	}
	if len(m.data.ReadinessHistory) > 2 {
		sections = append(sections, m.renderReadinessChart())
	}

	help := statusStyle.Render("Press 'r' to refresh, 's' to sync, '2' for trends")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderWorkloadCard() string {
	title := cardTitleStyle.Render("Workload")
	w := m.data.Workload

	lines := []string{
		RenderMetric("Acute (7d avg)", fmt.Sprintf("%.0f", w.AcuteLoad), ""),
		RenderMetric("Chronic (28d avg)", fmt.Sprintf("%.0f", w.ChronicLoad), ""),
		RenderMetric("ACWR", formatPtr(w.ACWR, "%.2f"), ""),
		RenderMetric("Weekly load", humanize.Comma(int64(w.WeeklyLoad)), ""),
		RenderMetric("Monotony", formatPtr(w.Monotony, "%.2f"), ""),
		RenderMetric("Strain", formatPtr(w.Strain, "%.0f"), ""),
		"",
		bandStyle("", string(w.RiskBand)).Render(strings.ToUpper(string(w.RiskBand))),
		wrap(m.data.WorkloadGuidance, 34),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Form")

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.0f", m.data.Fitness.CTL), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.0f", m.data.Fitness.ATL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+.0f", m.data.Fitness.TSB), ""),
		trendFlatStyle.Render(m.data.FormDescription),
	}

	if v := m.data.Volume; v != nil {
		lines = append(lines,
			"",
			RenderMetric("Volume cut", fmt.Sprintf("%d%%", v.ReductionPct), string(v.Zone)),
			trendFlatStyle.Render("from "+m.data.VolumeSource),
			wrap(v.Guidance, 30),
		)
	}
	if len(m.data.ReadinessHistory) > 1 {
		lines = append(lines, RenderMetric("Readiness pctl", fmt.Sprintf("%s (z %+.1f)",
			humanize.Ordinal(int(m.data.ReadinessPercentile)), m.data.ReadinessZ), ""))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderScores() string {
	title := cardTitleStyle.Render("Latest Scores")

	if len(m.data.LatestScores) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No assessments yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-16s  %7s  %-16s  %-14s  %s",
		"Instrument", "Score", "Band", "Taken", "Guidance"))
	rows := []string{header}

	for _, s := range m.data.LatestScores {
		a := s.Assessment
		name := a.Instrument
		if def, err := assessment.Lookup(assessment.Instrument(a.Instrument)); err == nil {
			name = def.Name
		}
		band := fmt.Sprintf("%-16s", a.Band)
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-16s  %7.1f  %s  %-14s  %s",
			truncateName(name, 16),
			a.RawScore,
			bandStyle(a.Instrument, a.Band).Render(band),
			humanize.RelTime(a.TakenAt, m.data.AsOf, "ago", "from now"),
			truncateName(s.Guidance, 50),
		)))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m DashboardModel) renderLoadChart() string {
	loads := make([]float64, 0, len(m.data.DailyLoads))
	for _, dl := range m.data.DailyLoads {
		loads = append(loads, dl.Load)
	}
	if len(loads) < 2 {
		return ""
	}

	title := cardTitleStyle.Render(fmt.Sprintf("Daily Load - since %s", m.data.DailyLoads[0].Date.Format(m.opts.DateFormat)))
	graph := asciigraph.Plot(loads,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderReadinessChart() string {
	title := cardTitleStyle.Render("Readiness")
	graph := asciigraph.Plot(m.data.ReadinessHistory,
		asciigraph.Height(6),
		asciigraph.Width(60),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
	)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}
