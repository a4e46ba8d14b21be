package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"athlete-monitor/internal/service"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log training sessions",
	}
	cmd.AddCommand(newSessionLogCmd())
	cmd.AddCommand(newSessionImportCmd())
	return cmd
}

func newSessionLogCmd() *cobra.Command {
	var (
		minutes float64
		rpe     int
		name    string
		at      string
	)
	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Log a session with its duration and session RPE",
		Example: "  athlete-monitor session log --minutes 75 --rpe 6 --name 'Tempo run'",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			when, err := parseWhen(at, time.Now())
			if err != nil {
				return err
			}

			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			athlete, err := e.athlete()
			if err != nil {
				return err
			}

			ts, err := e.record.LogSession(athlete.ID, service.SessionInput{
				Name:            name,
				StartedAt:       when,
				DurationMinutes: minutes,
				SessionRPE:      rpe,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Logged %s on %s: load %.0f, TSS %.0f\n", ts.Name, ts.Day, ts.Load, ts.TSS)
			return nil
		},
	}
	cmd.Flags().Float64Var(&minutes, "minutes", 0, "session duration in minutes")
	cmd.Flags().IntVar(&rpe, "rpe", 0, "session RPE, 0-10")
	cmd.Flags().StringVar(&name, "name", "", "session name")
	cmd.Flags().StringVar(&at, "at", "", "when the session started (default now)")
	cmd.MarkFlagRequired("minutes")
	cmd.MarkFlagRequired("rpe")
	return cmd
}

func newSessionImportCmd() *cobra.Command {
	var rpe int
	cmd := &cobra.Command{
		Use:   "import-fit FILE",
		Short: "Import a session from a Garmin/Wahoo FIT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			athlete, err := e.athlete()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ts, err := e.record.ImportFIT(athlete.ID, f, rpe)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %s on %s: %.0f min, load %.0f\n", ts.Name, ts.Day, ts.DurationMinutes, ts.Load)
			return nil
		},
	}
	cmd.Flags().IntVar(&rpe, "rpe", 0, "session RPE, 0-10")
	cmd.MarkFlagRequired("rpe")
	return cmd
}
