package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"athlete-monitor/internal/service"
	"athlete-monitor/internal/store"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenTrends
	ScreenHistory
	ScreenSync
	ScreenHelp
)

// Options carries display settings from the config file
type Options struct {
	DateFormat string
	Now        func() time.Time
}

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard  DashboardModel
	trends     TrendsModel
	history    HistoryModel
	syncScreen SyncModel
	help       HelpModel

	// Services
	athlete      store.Athlete
	queryService *service.QueryService
	opts         Options

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App for one athlete. syncService may be nil when
// Strava is not connected.
func NewApp(athlete store.Athlete, queryService *service.QueryService, syncService *service.SyncService, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "Mon Jan 2"
	}
	return &App{
		screen:       ScreenDashboard,
		athlete:      athlete,
		queryService: queryService,
		opts:         opts,
		dashboard:    NewDashboardModel(queryService, athlete.ID, opts),
		trends:       NewTrendsModel(queryService, athlete.ID, opts),
		history:      NewHistoryModel(queryService, athlete.ID, opts),
		syncScreen:   NewSyncModel(syncService, athlete.ID),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless in sync mode)
		if a.screen != ScreenSync || !a.syncScreen.syncing {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenTrends
				return a, a.trends.Init()
			case "3":
				a.screen = ScreenHistory
				return a, a.history.Init()
			case "4", "s":
				if a.screen != ScreenSync {
					a.screen = ScreenSync
					return a, a.syncScreen.Init()
				}
				// Let 's' fall through to sync screen when already there
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The history viewport sizes itself even when hidden
		m, cmd := a.history.Update(msg)
		a.history = m.(HistoryModel)
		return a, cmd

	case SyncCompleteMsg:
		a.status = msg.Summary
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenTrends:
		var m tea.Model
		m, cmd = a.trends.Update(msg)
		a.trends = m.(TrendsModel)
	case ScreenHistory:
		var m tea.Model
		m, cmd = a.history.Update(msg)
		a.history = m.(HistoryModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenTrends:
		content = a.trends.View()
	case ScreenHistory:
		content = a.history.View()
	case ScreenSync:
		content = a.syncScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Athlete Monitor · " + a.athlete.Name)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Trends", ScreenTrends},
		{"3", "History", ScreenHistory},
		{"4", "Sync", ScreenSync},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

// SyncCompleteMsg is sent when sync finishes
type SyncCompleteMsg struct {
	Summary string
}
