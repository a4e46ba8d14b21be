package service

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"athlete-monitor/internal/analysis"
	"athlete-monitor/internal/assessment"
	"athlete-monitor/internal/store"
)

// QueryService provides read-only queries for the CLI and TUI
type QueryService struct {
	store       *store.DB
	historyDays int
	fitnessDays int
}

// NewQueryService creates a new query service. Zero windows fall back to
// the defaults.
func NewQueryService(db *store.DB, historyDays, fitnessDays int) *QueryService {
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	if fitnessDays <= 0 {
		fitnessDays = DefaultFitnessDays
	}
	return &QueryService{store: db, historyDays: historyDays, fitnessDays: fitnessDays}
}

// HistoryDays is the default window for trends and correlations
func (q *QueryService) HistoryDays() int {
	return q.historyDays
}

// ResolveAthlete finds an athlete by ID or, failing that, by name
func (q *QueryService) ResolveAthlete(ref string) (*store.Athlete, error) {
	a, err := q.store.GetAthlete(ref)
	if errors.Is(err, store.ErrAthleteNotFound) {
		a, err = q.store.GetAthleteByName(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving athlete %q: %w", ref, err)
	}
	return a, nil
}

// ListAthletes returns every athlete
func (q *QueryService) ListAthletes() ([]store.Athlete, error) {
	return q.store.ListAthletes()
}

// RecentAssessments returns the newest assessments first
func (q *QueryService) RecentAssessments(athleteID string, limit int) ([]store.Assessment, error) {
	if limit <= 0 {
		limit = RecentAssessmentsLimit
	}
	return q.store.RecentAssessments(athleteID, limit)
}

// History assembles the daily record history for the days window ending at asOf
func (q *QueryService) History(athleteID string, asOf time.Time, days int) (analysis.HistorySlice, error) {
	if days <= 0 {
		days = q.historyDays
	}
	from := windowStart(asOf, days)

	assessments, err := q.store.ListAssessments(athleteID, from)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	loads, err := q.store.DailyLoads(athleteID, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("loading daily loads: %w", err)
	}

	var upTo []store.Assessment
	last := asOf.Format("2006-01-02")
	for _, a := range assessments {
		if a.Day <= last {
			upTo = append(upTo, a)
		}
	}
	return BuildHistory(upTo, loads), nil
}

// Correlations correlates every pair of metrics over the days window
func (q *QueryService) Correlations(athleteID string, asOf time.Time, days int) (analysis.CorrelationReport, error) {
	history, err := q.History(athleteID, asOf, days)
	if err != nil {
		return analysis.CorrelationReport{}, err
	}
	return analysis.Correlate(history), nil
}

// Trends classifies every metric over the days window
func (q *QueryService) Trends(athleteID string, asOf time.Time, days int) (map[string]analysis.TrendSummary, error) {
	history, err := q.History(athleteID, asOf, days)
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzeTrends(history), nil
}

// BuildHistory turns stored assessments and daily loads into one record per
// day. Each instrument contributes its latest raw score of the day under its
// ID; loads appear as TrainingLoadMetric. Session TRIMP assessments are left
// out since the load already carries them.
func BuildHistory(assessments []store.Assessment, loads []store.DayLoad) analysis.HistorySlice {
	byDay := make(map[string]map[string]float64)
	latest := make(map[string]time.Time)
	metrics := func(day string) map[string]float64 {
		m, ok := byDay[day]
		if !ok {
			m = make(map[string]float64)
			byDay[day] = m
		}
		return m
	}

	for _, a := range assessments {
		if a.Instrument == string(assessment.TRIMP) {
			continue
		}
		k := a.Day + "/" + a.Instrument
		if t, seen := latest[k]; seen && a.TakenAt.Before(t) {
			continue
		}
		latest[k] = a.TakenAt
		metrics(a.Day)[a.Instrument] = a.RawScore
	}
	for _, dl := range loads {
		metrics(dl.Day)[TrainingLoadMetric] = dl.Load
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	slices.Sort(days)

	history := make(analysis.HistorySlice, 0, len(days))
	for _, d := range days {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		history = append(history, analysis.DailyRecord{Date: date, Metrics: byDay[d]})
	}
	return history
}

// windowStart is the first calendar day of a days-long window ending at asOf
func windowStart(asOf time.Time, days int) time.Time {
	y, m, d := asOf.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, asOf.Location()).AddDate(0, 0, -(days - 1))
}

// civilDate is t's calendar date at midnight UTC, the form day strings
// parse to
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
