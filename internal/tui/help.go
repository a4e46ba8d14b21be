package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Trends and correlations"},
		{"3", "Assessment history"},
		{"4 or s", "Sync screen"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	})
	sections = append(sections, navSection)

	sections = append(sections, m.renderSection("Dashboard", []keyHelp{
		{"r", "Refresh data"},
	}))
	sections = append(sections, m.renderSection("Trends", []keyHelp{
		{"w", "Cycle window (7, 14, 28 days)"},
		{"r", "Refresh"},
	}))
	sections = append(sections, m.renderSection("History", []keyHelp{
		{"j / down", "Scroll down"},
		{"k / up", "Scroll up"},
		{"r", "Refresh list"},
	}))
	sections = append(sections, m.renderSection("Sync Screen", []keyHelp{
		{"s / enter", "Start sync"},
	}))

	// Metrics explanation
	metricsSection := m.renderMetricsHelp()
	sections = append(sections, metricsSection)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Metrics Explained"))
	lines = append(lines, "")

	metrics := []struct {
		name string
		desc string
	}{
		{"Session load (TRIMP)", "Duration in minutes x session RPE (0-10)."},
		{"ACWR", "Acute (7 day) over chronic (28 day) average load. 0.8-1.3 is the sweet spot."},
		{"Monotony / Strain", "Weekly mean over std of daily load; strain is weekly load x monotony."},
		{"CTL (Fitness)", "Chronic training load - 42 day weighted average of load."},
		{"ATL (Fatigue)", "Acute training load - 7 day weighted average of load."},
		{"TSB (Form)", "Training stress balance = CTL - ATL. Positive = fresh."},
		{"Correlation", "Pearson r over days where both metrics were recorded. |r| >= 0.5 is strong."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name))
		lines = append(lines, "  "+trendFlatStyle.Render(metric.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
