package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"athlete-monitor/internal/service"
)

func newReportCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print workload, latest scores, trends and correlations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			athlete, err := e.athlete()
			if err != nil {
				return err
			}

			now := time.Now()
			data, err := e.query.Dashboard(athlete.ID, now)
			if err != nil {
				return err
			}
			if days > 0 && days != e.query.HistoryDays() {
				if data.Trends, err = e.query.Trends(athlete.ID, now, days); err != nil {
					return err
				}
				if data.Correlations, err = e.query.Correlations(athlete.ID, now, days); err != nil {
					return err
				}
			} else {
				days = e.query.HistoryDays()
			}
			return printReport(os.Stdout, data, days)
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "trend and correlation window in days (default windows.history_days)")
	return cmd
}

func printReport(out io.Writer, d *service.DashboardData, days int) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	opt := func(v *float64, format string) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf(format, *v)
	}

	fmt.Fprintf(w, "%s, %s\n\n", d.Athlete.Name, d.AsOf.Format("Mon Jan 2 2006"))

	wl := d.Workload
	fmt.Fprintln(w, "WORKLOAD")
	fmt.Fprintf(w, "  acute\t%.0f\tchronic\t%.0f\n", wl.AcuteLoad, wl.ChronicLoad)
	fmt.Fprintf(w, "  ACWR\t%s\trisk\t%s\n", opt(wl.ACWR, "%.2f"), wl.RiskBand)
	fmt.Fprintf(w, "  weekly load\t%s\tmonotony\t%s\tstrain\t%s\n", humanize.Comma(int64(wl.WeeklyLoad)), opt(wl.Monotony, "%.2f"), opt(wl.Strain, "%.0f"))
	fmt.Fprintf(w, "  %s\n\n", d.WorkloadGuidance)

	fmt.Fprintln(w, "FORM")
	fmt.Fprintf(w, "  CTL\t%.1f\tATL\t%.1f\tTSB\t%+.1f\t%s\n", d.Fitness.CTL, d.Fitness.ATL, d.Fitness.TSB, d.FormDescription)
	if d.Volume != nil {
		fmt.Fprintf(w, "  volume cut\t%d%% (%s, from %s)\t%s\n", d.Volume.ReductionPct, d.Volume.Zone, d.VolumeSource, d.Volume.Guidance)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "LATEST SCORES (%d recorded)\n", d.AssessmentCount)
	for _, s := range d.LatestScores {
		a := s.Assessment
		fmt.Fprintf(w, "  %s\t%.1f\t%s\t%s\t%s\n", a.Instrument, a.RawScore, a.Band, humanize.RelTime(a.TakenAt, d.AsOf, "ago", "from now"), s.Guidance)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "TRENDS (last %d days)\n", days)
	for _, name := range slices.Sorted(maps.Keys(d.Trends)) {
		t := d.Trends[name]
		fmt.Fprintf(w, "  %s\t%s\t%d points\t%.1f -> %.1f\n", name, t.Label, t.Points, t.FirstMean, t.SecondMean)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "CORRELATIONS (last %d days)\n", days)
	if len(d.Correlations.Pairs) == 0 {
		fmt.Fprintln(w, "  not enough overlapping days")
	}
	for _, p := range d.Correlations.Pairs {
		fmt.Fprintf(w, "  %s ~ %s\tr=%+.2f\t%d days\t%s\n", p.MetricA, p.MetricB, p.R, p.Points, p.Interpretation)
	}
	return w.Flush()
}
