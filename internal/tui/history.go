package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"athlete-monitor/internal/service"
	"athlete-monitor/internal/store"
)

// historyLimit is how many assessments the history screen loads
const historyLimit = 200

// HistoryModel is a scrollable log of recorded assessments
type HistoryModel struct {
	queryService *service.QueryService
	athleteID    string
	opts         Options
	assessments  []store.Assessment
	viewport     viewport.Model
	ready        bool
	loading      bool
	err          error
}

// NewHistoryModel creates a new history model
func NewHistoryModel(qs *service.QueryService, athleteID string, opts Options) HistoryModel {
	return HistoryModel{
		queryService: qs,
		athleteID:    athleteID,
		opts:         opts,
		loading:      true,
	}
}

// Init initializes the history screen
func (m HistoryModel) Init() tea.Cmd {
	return m.loadData
}

type historyLoadedMsg struct {
	assessments []store.Assessment
	err         error
}

func (m HistoryModel) loadData() tea.Msg {
	list, err := m.queryService.RecentAssessments(m.athleteID, historyLimit)
	return historyLoadedMsg{assessments: list, err: err}
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.assessments = msg.assessments
		if m.ready {
			m.viewport.SetContent(m.renderContent())
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.WindowSizeMsg:
		// Reserve space for header, nav and footer
		height := max(msg.Height-8, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadData
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the history screen
func (m HistoryModel) View() string {
	if m.loading {
		return "\n  Loading history..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if !m.ready {
		return m.renderContent()
	}

	footer := statusStyle.Render(fmt.Sprintf("%3.0f%%  j/k or arrows to scroll, 'r' to refresh", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m HistoryModel) renderContent() string {
	if len(m.assessments) == 0 {
		return "\n  No assessments recorded yet. Use 'athlete-monitor assess' to add one."
	}

	now := m.opts.Now()
	lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%-12s  %-14s  %-16s  %7s  %6s  %s",
		"Date", "When", "Instrument", "Score", "Norm", "Band"))}

	for _, a := range m.assessments {
		norm := formatPtr(a.NormalizedScore, "%.0f")
		band := a.Band
		if band == "" {
			band = "-"
		}
		lines = append(lines, tableRowStyle.Render(fmt.Sprintf("%-12s  %-14s  %-16s  %7.1f  %6s  %s",
			a.TakenAt.Local().Format(m.opts.DateFormat),
			humanize.RelTime(a.TakenAt, now, "ago", "from now"),
			truncateName(a.Instrument, 16),
			a.RawScore,
			norm,
			bandStyle(a.Instrument, a.Band).Render(band),
		)))
	}
	return strings.Join(lines, "\n")
}
