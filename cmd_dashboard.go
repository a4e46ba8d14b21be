package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"athlete-monitor/internal/tui"
)

func runDashboardCmd(_ *cobra.Command, _ []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.Close()

	athlete, err := e.athlete()
	if err != nil {
		return err
	}

	app := tui.NewApp(*athlete, e.query, e.dashboardSync(athlete.ID), tui.Options{
		DateFormat: e.cfg.Display.DateFormat,
		Now:        time.Now,
	})
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
