package analysis

import (
	"maps"
	"slices"
	"time"
)

// DailyRecord carries the metrics observed on one day. A metric that was not
// recorded that day is simply absent.
type DailyRecord struct {
	Date    time.Time
	Metrics map[string]float64
}

// HistorySlice is a date-ordered run of daily records
type HistorySlice []DailyRecord

// MetricNames returns every metric that appears at least once, sorted
func (h HistorySlice) MetricNames() []string {
	seen := make(map[string]bool)
	for _, rec := range h {
		for name := range rec.Metrics {
			seen[name] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Values returns the recorded values of a metric in record order
func (h HistorySlice) Values(metric string) []float64 {
	var out []float64
	for _, rec := range h {
		if v, ok := rec.Metrics[metric]; ok {
			out = append(out, v)
		}
	}
	return out
}

// byDay indexes a metric's values by calendar day. A later record for the
// same day wins.
func (h HistorySlice) byDay(metric string) map[string]float64 {
	out := make(map[string]float64)
	for _, rec := range h {
		if v, ok := rec.Metrics[metric]; ok {
			out[dayKey(rec.Date)] = v
		}
	}
	return out
}
