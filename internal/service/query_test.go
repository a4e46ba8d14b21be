package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athlete-monitor/internal/analysis"
	"athlete-monitor/internal/assessment"
	"athlete-monitor/internal/recommend"
	"athlete-monitor/internal/store"
)

func TestBuildHistoryLatestPerDay(t *testing.T) {
	morning := day1
	evening := day1.Add(10 * time.Hour)
	assessments := []store.Assessment{
		{Instrument: "nprs", Day: "2024-03-01", TakenAt: evening, RawScore: 6},
		{Instrument: "nprs", Day: "2024-03-01", TakenAt: morning, RawScore: 2},
		{Instrument: "tqr", Day: "2024-03-02", TakenAt: day1.AddDate(0, 0, 1), RawScore: 15},
		{Instrument: "trimp", Day: "2024-03-02", TakenAt: day1.AddDate(0, 0, 1), RawScore: 300},
	}
	loads := []store.DayLoad{{Day: "2024-03-02", Load: 420}, {Day: "2024-02-29", Load: 100}}

	h := BuildHistory(assessments, loads)
	require.Len(t, h, 3)
	assert.Equal(t, "2024-02-29", h[0].Date.Format("2006-01-02"))
	assert.Equal(t, map[string]float64{TrainingLoadMetric: 100}, h[0].Metrics)
	assert.Equal(t, map[string]float64{"nprs": 6}, h[1].Metrics)
	assert.Equal(t, map[string]float64{"tqr": 15, TrainingLoadMetric: 420}, h[2].Metrics)
}

func TestWorkloadWindowFillsRestDays(t *testing.T) {
	f := newFixture(t)
	f.logSession(t, day1, 60, 5)                   // 300
	f.logSession(t, day1.AddDate(0, 0, 2), 60, 5) // 300

	asOf := day1.AddDate(0, 0, 3)
	w, err := f.query.WorkloadWindow(f.athlete.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Len())

	m := w.Metrics()
	assert.InDelta(t, 150.0, m.AcuteLoad, 1e-9)
	assert.InDelta(t, 600.0, m.WeeklyLoad, 1e-9)
	require.NotNil(t, m.ACWR)
	assert.InDelta(t, 1.0, *m.ACWR, 1e-9)
	assert.Equal(t, analysis.RiskOptimal, m.RiskBand)
}

func TestWorkloadWindowCountsBreakAsRest(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 14; i++ {
		f.logSession(t, day1.AddDate(0, 0, i), 60, 5) // 300
	}
	back := day1.AddDate(0, 0, 14+26)
	for i := 0; i < 5; i++ {
		f.logSession(t, back.AddDate(0, 0, i), 60, 5)
	}

	w, err := f.query.WorkloadWindow(f.athlete.ID, back.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 28, w.Len())

	m := w.Metrics()
	assert.InDelta(t, 1500.0/7, m.AcuteLoad, 1e-9)
	assert.InDelta(t, 1500.0/28, m.ChronicLoad, 1e-9)
	require.NotNil(t, m.ACWR)
	assert.InDelta(t, 4.0, *m.ACWR, 1e-9)
	assert.Equal(t, analysis.RiskHigh, m.RiskBand)
}

func TestWorkloadWindowLongBreak(t *testing.T) {
	f := newFixture(t)
	f.logSession(t, day1, 60, 5)

	w, err := f.query.WorkloadWindow(f.athlete.ID, day1.AddDate(0, 0, 60))
	require.NoError(t, err)
	assert.Equal(t, 28, w.Len())
	m := w.Metrics()
	assert.Zero(t, m.ChronicLoad)
	assert.Nil(t, m.ACWR)
	assert.Equal(t, analysis.RiskInsufficientData, m.RiskBand)
}

func TestWorkloadWindowEmpty(t *testing.T) {
	f := newFixture(t)
	w, err := f.query.WorkloadWindow(f.athlete.ID, day1)
	require.NoError(t, err)
	assert.Zero(t, w.Len())
	assert.Equal(t, analysis.RiskInsufficientData, w.Metrics().RiskBand)
}

func TestFitnessTrendExtendsToAsOf(t *testing.T) {
	f := newFixture(t)
	f.logSession(t, day1, 60, 7)

	trend, err := f.query.FitnessTrend(f.athlete.ID, day1.AddDate(0, 0, 4))
	require.NoError(t, err)
	require.Len(t, trend, 5)
	assert.InDelta(t, 420.0/42, trend[0].CTL, 1e-9)
	assert.InDelta(t, 60.0, trend[0].ATL, 1e-9)
	assert.Less(t, trend[4].ATL, trend[0].ATL)
}

func TestHistoryAndTrends(t *testing.T) {
	f := newFixture(t)
	for i, pain := range []int{1, 2, 5, 6} {
		at := day1.AddDate(0, 0, i)
		f.assess(t, assessment.NPRS, assessment.ResponseSet{"pain": pain}, at)
		f.logSession(t, at, 30+float64(i)*10, 5)
	}
	asOf := day1.AddDate(0, 0, 3)

	h, err := f.query.History(f.athlete.ID, asOf, 7)
	require.NoError(t, err)
	require.Len(t, h, 4)

	trends, err := f.query.Trends(f.athlete.ID, asOf, 7)
	require.NoError(t, err)
	assert.Equal(t, analysis.TrendRising, trends["nprs"].Label)
	assert.Equal(t, analysis.TrendRising, trends[TrainingLoadMetric].Label)

	report, err := f.query.Correlations(f.athlete.ID, asOf, 7)
	require.NoError(t, err)
	pair, ok := report.Lookup("nprs", TrainingLoadMetric)
	require.True(t, ok)
	assert.Equal(t, 4, pair.Points)
	assert.Equal(t, analysis.StrongPositive, pair.Interpretation)
}

func TestHistoryWindowExcludesOlderDays(t *testing.T) {
	f := newFixture(t)
	f.assess(t, assessment.NPRS, assessment.ResponseSet{"pain": 3}, day1)
	f.assess(t, assessment.NPRS, assessment.ResponseSet{"pain": 4}, day1.AddDate(0, 0, 10))

	h, err := f.query.History(f.athlete.ID, day1.AddDate(0, 0, 10), 7)
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, 4.0, h[0].Metrics["nprs"])
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10; i++ {
		f.logSession(t, day1.AddDate(0, 0, i), 45, 6)
	}
	f.assess(t, assessment.Readiness, readiness(3, 8), day1.AddDate(0, 0, 8))
	f.assess(t, assessment.Readiness, readiness(5, 9), day1.AddDate(0, 0, 9))
	f.assess(t, assessment.TQR, assessment.ResponseSet{"recovery": 11}, day1.AddDate(0, 0, 9))

	asOf := day1.AddDate(0, 0, 9).Add(time.Hour)
	data, err := f.query.Dashboard(f.athlete.ID, asOf)
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", data.Athlete.Name)
	assert.Equal(t, 10, data.Workload.DaysPresent)
	assert.Equal(t, analysis.RiskOptimal, data.Workload.RiskBand)
	assert.NotEmpty(t, data.WorkloadGuidance)
	assert.Nil(t, data.Workload.Monotony, "identical daily loads have no monotony")
	assert.Len(t, data.DailyLoads, 10)
	assert.Len(t, data.FitnessTrend, 10)
	assert.NotEmpty(t, data.FormDescription)

	require.Len(t, data.LatestScores, 2)
	for _, s := range data.LatestScores {
		assert.NotEmpty(t, s.Guidance, s.Assessment.Instrument)
	}

	require.NotNil(t, data.Volume)
	assert.Equal(t, VolumeFromQuestionnaire, data.VolumeSource)
	assert.Equal(t, recommend.VolumeMinimal, data.Volume.Zone)

	assert.Equal(t, []float64{66, 100}, data.ReadinessHistory)
	assert.InDelta(t, 1.0, data.ReadinessZ, 1e-9)
	assert.InDelta(t, 75.0, data.ReadinessPercentile, 1e-9)

	assert.Contains(t, data.Trends, TrainingLoadMetric)
	assert.Equal(t, 3, data.AssessmentCount)
}

func TestDashboardVolumeFromForm(t *testing.T) {
	f := newFixture(t)
	f.logSession(t, day1, 90, 8)

	data, err := f.query.Dashboard(f.athlete.ID, day1)
	require.NoError(t, err)
	require.NotNil(t, data.Volume)
	assert.Equal(t, VolumeFromForm, data.VolumeSource)
	assert.Empty(t, data.LatestScores)
}

func TestResolveAthlete(t *testing.T) {
	f := newFixture(t)

	byID, err := f.query.ResolveAthlete(f.athlete.ID)
	require.NoError(t, err)
	assert.Equal(t, f.athlete.ID, byID.ID)

	byName, err := f.query.ResolveAthlete("ana souza")
	require.NoError(t, err)
	assert.Equal(t, f.athlete.ID, byName.ID)

	_, err = f.query.ResolveAthlete("nobody")
	assert.ErrorIs(t, err, store.ErrAthleteNotFound)
}
