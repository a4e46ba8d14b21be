package analysis

import (
	"math"
	"slices"
	"time"
)

// Time constants for the performance management chart
const (
	CTLDays = 42.0
	ATLDays = 7.0
)

// DailyLoad represents training load for a single day
type DailyLoad struct {
	Date time.Time
	Load float64
}

// FitnessMetrics represents CTL/ATL/TSB for a day
type FitnessMetrics struct {
	Date time.Time
	CTL  float64 // Chronic Training Load (42-day EMA) - "Fitness"
	ATL  float64 // Acute Training Load (7-day EMA) - "Fatigue"
	TSB  float64 // Training Stress Balance (CTL - ATL) - "Form"
}

// CalculateFitnessTrend computes CTL/ATL/TSB from daily loads.
// The input slice is not modified.
func CalculateFitnessTrend(dailyLoads []DailyLoad) []FitnessMetrics {
	if len(dailyLoads) == 0 {
		return nil
	}

	sorted := slices.Clone(dailyLoads)
	slices.SortFunc(sorted, func(a, b DailyLoad) int {
		return a.Date.Compare(b.Date)
	})

	// Smoothing factor is the reciprocal of the time constant
	ctlDecay := 1.0 / CTLDays
	atlDecay := 1.0 / ATLDays

	var metrics []FitnessMetrics
	var ctl, atl float64

	// Fill in missing days with zero load
	startDate := civilDay(sorted[0].Date)
	endDate := civilDay(sorted[len(sorted)-1].Date)

	loadMap := make(map[string]float64)
	for _, dl := range sorted {
		loadMap[dayKey(dl.Date)] += dl.Load // Sum multiple sessions on same day
	}

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		load := loadMap[dayKey(d)] // 0 on rest days

		ctl = ctl + ctlDecay*(load-ctl)
		atl = atl + atlDecay*(load-atl)

		metrics = append(metrics, FitnessMetrics{
			Date: d,
			CTL:  ctl,
			ATL:  atl,
			TSB:  ctl - atl,
		})
	}

	return metrics
}

// GetCurrentFitness returns the most recent CTL/ATL/TSB values
func GetCurrentFitness(dailyLoads []DailyLoad) FitnessMetrics {
	metrics := CalculateFitnessTrend(dailyLoads)
	if len(metrics) == 0 {
		return FitnessMetrics{}
	}
	return metrics[len(metrics)-1]
}

// FormDescription returns a human-readable description of TSB
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to compete"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}

// ReadinessFromForm maps TSB onto a 0-100 readiness score.
// TSB of -30 or lower is 0, +10 or higher is 100.
func ReadinessFromForm(tsb float64) float64 {
	clamped := math.Max(-30, math.Min(10, tsb))
	return math.Round((clamped + 30) * 100 / 40)
}

// civilDay drops the clock part of t, keeping its calendar date
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
