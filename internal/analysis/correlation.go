package analysis

import (
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// MinCorrelationPoints is the number of shared days a pair needs to be reported
const MinCorrelationPoints = 3

// Interpretation is the strength label of a correlation coefficient
type Interpretation string

const (
	StrongPositive Interpretation = "strong positive"
	StrongNegative Interpretation = "strong negative"
	Moderate       Interpretation = "moderate"
	WeakOrNone     Interpretation = "weak/none"
)

// CorrelationPair is the Pearson coefficient between two metrics over the
// days on which both were recorded. MetricA sorts before MetricB.
type CorrelationPair struct {
	MetricA        string
	MetricB        string
	R              float64
	Points         int
	Interpretation Interpretation
}

// CorrelationReport lists every pair with enough shared data
type CorrelationReport struct {
	Pairs []CorrelationPair
}

// Lookup finds the pair for two metrics in either order
func (r CorrelationReport) Lookup(a, b string) (CorrelationPair, bool) {
	if b < a {
		a, b = b, a
	}
	for _, p := range r.Pairs {
		if p.MetricA == a && p.MetricB == b {
			return p, true
		}
	}
	return CorrelationPair{}, false
}

// Correlate computes a coefficient for every unordered pair of metrics.
// Pairs with fewer than MinCorrelationPoints shared days, or where either
// series is constant over those days, are left out.
func Correlate(history HistorySlice) CorrelationReport {
	names := history.MetricNames()
	series := make(map[string]map[string]float64, len(names))
	for _, name := range names {
		series[name] = history.byDay(name)
	}

	var report CorrelationReport
	for i, a := range names {
		for _, b := range names[i+1:] {
			xs, ys := aligned(series[a], series[b])
			if len(xs) < MinCorrelationPoints {
				continue
			}
			r := stat.Correlation(xs, ys, nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				continue
			}
			report.Pairs = append(report.Pairs, CorrelationPair{
				MetricA:        a,
				MetricB:        b,
				R:              r,
				Points:         len(xs),
				Interpretation: InterpretCorrelation(r),
			})
		}
	}
	return report
}

// InterpretCorrelation labels a coefficient by magnitude
func InterpretCorrelation(r float64) Interpretation {
	switch abs := math.Abs(r); {
	case abs >= 0.5 && r > 0:
		return StrongPositive
	case abs >= 0.5:
		return StrongNegative
	case abs >= 0.3:
		return Moderate
	default:
		return WeakOrNone
	}
}

// aligned returns the values of both series on the days they share, in day order
func aligned(a, b map[string]float64) (xs, ys []float64) {
	for _, day := range slices.Sorted(maps.Keys(a)) {
		y, ok := b[day]
		if !ok {
			continue
		}
		xs = append(xs, a[day])
		ys = append(ys, y)
	}
	return xs, ys
}
