package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"athlete-monitor/internal/service"
)

// SyncModel is the sync screen model
type SyncModel struct {
	syncService *service.SyncService
	athleteID   string
	syncing     bool
	progress    <-chan service.SyncProgress
	last        service.SyncProgress
	result      *service.SyncResult
	err         error
	done        bool
}

// NewSyncModel creates a new sync model. A nil service means Strava is
// not connected.
func NewSyncModel(ss *service.SyncService, athleteID string) SyncModel {
	return SyncModel{
		syncService: ss,
		athleteID:   athleteID,
	}
}

// Init initializes the sync screen
func (m SyncModel) Init() tea.Cmd {
	return nil
}

// SyncDoneMsg is sent when sync finishes
type SyncDoneMsg struct {
	Result *service.SyncResult
	Err    error
}

type syncProgressMsg service.SyncProgress

// Update handles messages
func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncProgressMsg:
		m.last = service.SyncProgress(msg)
		return m, waitForProgress(m.progress)

	case SyncDoneMsg:
		m.syncing = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		summary := "Sync failed"
		if msg.Err == nil && msg.Result != nil {
			summary = fmt.Sprintf("Synced: %d new sessions", msg.Result.Imported)
		}
		return m, func() tea.Msg { return SyncCompleteMsg{Summary: summary} }

	case tea.KeyMsg:
		if !m.syncing && m.syncService != nil {
			switch msg.String() {
			case "enter", "s":
				progress := make(chan service.SyncProgress, 16)
				m.syncing = true
				m.done = false
				m.err = nil
				m.result = nil
				m.last = service.SyncProgress{}
				m.progress = progress
				return m, tea.Batch(m.runSync(progress), waitForProgress(progress))
			}
		}
	}
	return m, nil
}

func (m SyncModel) runSync(progress chan<- service.SyncProgress) tea.Cmd {
	return func() tea.Msg {
		result, err := m.syncService.SyncStrava(context.Background(), m.athleteID, progress)
		return SyncDoneMsg{Result: result, Err: err}
	}
}

// waitForProgress delivers the next progress update. It yields nothing once
// the sync closes the channel.
func waitForProgress(ch <-chan service.SyncProgress) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return syncProgressMsg(p)
	}
}

// View renders the sync screen
func (m SyncModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Strava Sync")
	sections = append(sections, title)

	if m.syncService == nil {
		sections = append(sections, "\n  Strava is not connected.",
			statusStyle.Render("  Run 'athlete-monitor strava login' and restart."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 's' or Enter to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.done && !m.syncing {
		sections = append(sections, successStyle.Render("\n  Sync complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '1' to go to dashboard"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.syncing {
		sections = append(sections, m.renderProgress())
	} else {
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SyncModel) renderStartPrompt() string {
	lines := []string{
		"",
		"  This will import your Strava activities as training sessions.",
		"",
		"  Only activities with a perceived exertion rating are imported;",
		"  rate an activity on Strava and sync again to pick it up.",
		"",
		statusStyle.Render("  Press 's' or Enter to start sync"),
	}
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderProgress() string {
	lines := []string{"", "  Syncing with Strava...", ""}

	switch m.last.Phase {
	case service.PhaseImporting:
		pct := 0.0
		if m.last.Total > 0 {
			pct = float64(m.last.Completed) / float64(m.last.Total)
		}
		lines = append(lines,
			fmt.Sprintf("  Importing %d of %d", m.last.Completed+1, m.last.Total),
			"  "+RenderProgressBar(pct, 40),
			statusStyle.Render("  "+truncateName(m.last.CurrentActivity, 50)),
		)
	default:
		lines = append(lines, fmt.Sprintf("  Listing activities... %d found", m.last.Completed))
	}
	if m.last.Error != nil {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %v", m.last.Error)))
	}
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderSummary() string {
	if m.result == nil {
		return ""
	}

	r := m.result
	lines := []string{""}

	if r.Imported > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d sessions imported", r.Imported)))
	} else {
		lines = append(lines, statusStyle.Render("  No new sessions"))
	}
	if r.AlreadyStored > 0 {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("  %d already stored", r.AlreadyStored)))
	}
	if r.SkippedNoRPE > 0 {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d skipped without perceived exertion", r.SkippedNoRPE)))
	}
	if len(r.Errors) > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("  %d errors occurred", len(r.Errors))))
	}

	return strings.Join(lines, "\n")
}
