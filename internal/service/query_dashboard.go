package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"athlete-monitor/internal/analysis"
	"athlete-monitor/internal/assessment"
	"athlete-monitor/internal/recommend"
	"athlete-monitor/internal/store"
)

// Volume advice sources
const (
	VolumeFromQuestionnaire = "readiness questionnaire"
	VolumeFromForm          = "training form"
)

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	Athlete store.Athlete
	AsOf    time.Time

	// Workload window
	Workload         analysis.WorkloadMetrics
	WorkloadGuidance string
	DailyLoads       []analysis.DailyLoad // window contents, zero-filled

	// Performance management chart
	Fitness         analysis.FitnessMetrics
	FormDescription string
	FitnessTrend    []analysis.FitnessMetrics

	// Latest score per instrument
	LatestScores []ScoreSummary

	// Volume advice from the latest readiness score, or from form when the
	// athlete has no readiness questionnaire
	Volume       *recommend.VolumeAdvice
	VolumeSource string

	// Readiness history over the fitness window
	ReadinessHistory    []float64
	ReadinessZ          float64
	ReadinessPercentile float64

	// History window analytics
	Trends       map[string]analysis.TrendSummary
	Correlations analysis.CorrelationReport

	AssessmentCount int
}

// ScoreSummary is a latest stored score with its guidance
type ScoreSummary struct {
	Assessment store.Assessment
	Guidance   string
	Age        time.Duration
}

// Dashboard fetches everything the dashboard shows for an athlete as of a moment
func (q *QueryService) Dashboard(athleteID string, asOf time.Time) (*DashboardData, error) {
	athlete, err := q.store.GetAthlete(athleteID)
	if err != nil {
		return nil, err
	}
	data := &DashboardData{Athlete: *athlete, AsOf: asOf}

	window, err := q.WorkloadWindow(athleteID, asOf)
	if err != nil {
		return nil, err
	}
	data.Workload = window.Metrics()
	data.DailyLoads = window.Loads()
	data.WorkloadGuidance, err = recommend.ForWorkload(data.Workload)
	if err != nil {
		return nil, err
	}

	data.FitnessTrend, err = q.FitnessTrend(athleteID, asOf)
	if err != nil {
		return nil, err
	}
	if n := len(data.FitnessTrend); n > 0 {
		data.Fitness = data.FitnessTrend[n-1]
		data.FormDescription = analysis.FormDescription(data.Fitness.TSB)
	}

	latest, err := q.store.LatestAssessments(athleteID)
	if err != nil {
		return nil, fmt.Errorf("loading latest assessments: %w", err)
	}
	for _, a := range latest {
		summary := ScoreSummary{Assessment: a, Age: asOf.Sub(a.TakenAt)}
		if a.Band != string(assessment.Unbanded) {
			summary.Guidance, err = recommend.Recommend(recommend.MetricID(a.Instrument), a.Band)
			if err != nil {
				// Stored bands predate a guidance change; show the score anyway
				logrus.WithError(err).WithField("instrument", a.Instrument).Warn("no guidance for stored band")
			}
		}
		if a.Instrument == string(assessment.Readiness) {
			advice := recommend.VolumeReduction(a.RawScore)
			data.Volume = &advice
			data.VolumeSource = VolumeFromQuestionnaire
		}
		data.LatestScores = append(data.LatestScores, summary)
	}
	if data.Volume == nil && len(data.FitnessTrend) > 0 {
		advice := recommend.VolumeReduction(analysis.ReadinessFromForm(data.Fitness.TSB))
		data.Volume = &advice
		data.VolumeSource = VolumeFromForm
	}

	if err := q.fillReadiness(data, athleteID, asOf); err != nil {
		return nil, err
	}

	history, err := q.History(athleteID, asOf, q.historyDays)
	if err != nil {
		return nil, err
	}
	data.Trends = analysis.AnalyzeTrends(history)
	data.Correlations = analysis.Correlate(history)

	data.AssessmentCount, err = q.store.CountAssessments(athleteID)
	if err != nil {
		return nil, fmt.Errorf("counting assessments: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"athlete": athleteID,
		"days":    data.Workload.DaysPresent,
		"risk":    data.Workload.RiskBand,
	}).Debug("dashboard computed")
	return data, nil
}

// WorkloadWindow rebuilds the acute/chronic window ending at asOf. Days
// without sessions since the athlete's first logged day count as rest days
// with zero load, including a break that began before the window.
func (q *QueryService) WorkloadWindow(athleteID string, asOf time.Time) (*analysis.WorkloadWindow, error) {
	window := analysis.NewWorkloadWindow()

	firstDay, err := q.store.FirstSessionDay(athleteID)
	if err != nil {
		return nil, fmt.Errorf("loading first session day: %w", err)
	}
	if firstDay == "" {
		return window, nil
	}
	first, err := time.Parse("2006-01-02", firstDay)
	if err != nil {
		return nil, fmt.Errorf("parsing day %q: %w", firstDay, err)
	}

	from := windowStart(asOf, WorkloadLookbackDays)
	if start := civilDate(from); start.After(first) {
		first = start
	}
	last := civilDate(asOf)
	if first.After(last) {
		return window, nil
	}

	loads, err := q.store.DailyLoads(athleteID, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("loading daily loads: %w", err)
	}
	byDay := make(map[string]float64, len(loads))
	for _, dl := range loads {
		byDay[dl.Day] = dl.Load
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if _, err := window.Ingest(d, byDay[d.Format("2006-01-02")]); err != nil {
			return nil, err
		}
	}
	return window, nil
}

// FitnessTrend computes CTL/ATL/TSB over the fitness window, carried
// forward through rest days up to asOf
func (q *QueryService) FitnessTrend(athleteID string, asOf time.Time) ([]analysis.FitnessMetrics, error) {
	loads, err := q.store.DailyLoads(athleteID, windowStart(asOf, q.fitnessDays), asOf)
	if err != nil {
		return nil, fmt.Errorf("loading daily loads: %w", err)
	}
	if len(loads) == 0 {
		return nil, nil
	}

	daily := make([]analysis.DailyLoad, 0, len(loads)+1)
	for _, dl := range loads {
		d, err := time.Parse("2006-01-02", dl.Day)
		if err != nil {
			return nil, fmt.Errorf("parsing day %q: %w", dl.Day, err)
		}
		daily = append(daily, analysis.DailyLoad{Date: d, Load: dl.Load})
	}
	// A zero load on asOf extends the series through trailing rest days
	daily = append(daily, analysis.DailyLoad{Date: civilDate(asOf)})
	return analysis.CalculateFitnessTrend(daily), nil
}

func (q *QueryService) fillReadiness(data *DashboardData, athleteID string, asOf time.Time) error {
	assessments, err := q.store.ListAssessments(athleteID, windowStart(asOf, q.fitnessDays))
	if err != nil {
		return fmt.Errorf("listing assessments: %w", err)
	}
	for _, a := range assessments {
		if a.Instrument == string(assessment.Readiness) && !a.TakenAt.After(asOf) {
			data.ReadinessHistory = append(data.ReadinessHistory, a.RawScore)
		}
	}
	if len(data.ReadinessHistory) == 0 {
		return nil
	}

	current := data.ReadinessHistory[len(data.ReadinessHistory)-1]
	mean, std := stat.PopMeanStdDev(data.ReadinessHistory, nil)
	data.ReadinessZ = analysis.ZScore(current, mean, std)
	data.ReadinessPercentile = analysis.Percentile(current, data.ReadinessHistory)
	return nil
}
