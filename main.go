package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"athlete-monitor/internal/assessment"
	"athlete-monitor/internal/config"
	"athlete-monitor/internal/logging"
	"athlete-monitor/internal/service"
	"athlete-monitor/internal/store"
)

var (
	athleteRef string
	dbPath     string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "athlete-monitor",
		Short:        "Wellness questionnaires, training load and readiness for athletes",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&athleteRef, "athlete", "a", "", "athlete name or ID (default: display.default_athlete)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.athlete-monitor/data.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")

	rootCmd.AddCommand(newAthleteCmd())
	rootCmd.AddCommand(newInstrumentsCmd())
	rootCmd.AddCommand(newAssessCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newStravaCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// env holds what every command needs once config, logging and the
// database are up
type env struct {
	cfg    *config.Config
	db     *store.DB
	logs   io.Closer
	record *service.RecordService
	query  *service.QueryService
}

// setup loads config, starts logging and opens the database. When the
// TUI owns the terminal logs only go to the file.
func setup(interactive bool) (*env, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		defaults := config.DefaultConfig()
		cfg = &defaults
	} else if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return nil, fmt.Errorf("invalid config in %s/config.json: %w", configDir, err)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	logs := logging.Setup(logging.SetupParams{
		FileName:     logPath,
		AlsoToStderr: verbose && !interactive,
		Level:        cfg.Logging.Level,
		FormatJSON:   cfg.Logging.JSON,
	})

	var db *store.DB
	if dbPath != "" {
		db, err = store.OpenPath(dbPath)
	} else {
		db, err = store.Open()
	}
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	scorer := assessment.NewScorer(cfg.Scoring.HooperBands)
	return &env{
		cfg:    cfg,
		db:     db,
		logs:   logs,
		record: service.NewRecordService(db, scorer),
		query:  service.NewQueryService(db, cfg.Windows.HistoryDays, cfg.Windows.FitnessDays),
	}, nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		logrus.WithError(err).Warn("closing database")
	}
	e.logs.Close()
}

// athlete resolves --athlete, falling back to the configured default and
// then to the only athlete on file
func (e *env) athlete() (*store.Athlete, error) {
	ref := athleteRef
	if ref == "" {
		ref = e.cfg.Display.DefaultAthlete
	}
	if ref != "" {
		return e.query.ResolveAthlete(ref)
	}

	athletes, err := e.query.ListAthletes()
	if err != nil {
		return nil, err
	}
	switch len(athletes) {
	case 0:
		return nil, errors.New("no athletes yet, add one with 'athlete-monitor athlete add NAME'")
	case 1:
		return &athletes[0], nil
	}
	names := make([]string, len(athletes))
	for i, a := range athletes {
		names[i] = a.Name
	}
	return nil, fmt.Errorf("several athletes on file (%s), pick one with --athlete", strings.Join(names, ", "))
}

// parseWhen reads a --at value: a date, a date and time, or RFC 3339.
// Empty means now.
func parseWhen(v string, now time.Time) (time.Time, error) {
	if v == "" {
		return now, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", v)
}
