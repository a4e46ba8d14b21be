package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TrendLabel describes the direction of a metric over a history window
type TrendLabel string

const (
	TrendRising           TrendLabel = "rising"
	TrendFalling          TrendLabel = "falling"
	TrendStable           TrendLabel = "stable"
	TrendInsufficientData TrendLabel = "insufficient data"
)

// trendThreshold is the relative change between halves needed to call a trend
const trendThreshold = 0.05

// TrendSummary is the trend of one metric
type TrendSummary struct {
	Metric     string
	Label      TrendLabel
	Points     int
	FirstMean  float64
	SecondMean float64
	Slope      float64 // least-squares change per recorded point
}

// AnalyzeTrends classifies every metric in the history
func AnalyzeTrends(history HistorySlice) map[string]TrendSummary {
	out := make(map[string]TrendSummary)
	for _, name := range history.MetricNames() {
		s := Trend(history.Values(name))
		s.Metric = name
		out[name] = s
	}
	return out
}

// Trend compares the mean of the first half of the values with the mean of
// the second half. With fewer than four values the first and last are
// compared directly; with an odd count the middle value is left out.
func Trend(values []float64) TrendSummary {
	n := len(values)
	s := TrendSummary{Points: n, Label: TrendInsufficientData}
	if n < 2 {
		return s
	}

	if n < 4 {
		s.FirstMean, s.SecondMean = values[0], values[n-1]
	} else {
		s.FirstMean = stat.Mean(values[:n/2], nil)
		s.SecondMean = stat.Mean(values[(n+1)/2:], nil)
	}

	s.Slope = Slope(values)

	delta := s.SecondMean - s.FirstMean
	limit := trendThreshold * math.Abs(s.FirstMean)
	switch {
	case delta > limit:
		s.Label = TrendRising
	case -delta > limit:
		s.Label = TrendFalling
	default:
		s.Label = TrendStable
	}
	return s
}
