package analysis

import (
	"math"
	"testing"
)

func TestCorrelateOmitsPairsWithoutSharedDays(t *testing.T) {
	h := HistorySlice{
		{Date: day1, Metrics: map[string]float64{"readiness": 70}},
		{Date: day1.AddDate(0, 0, 1), Metrics: map[string]float64{"readiness": 72}},
		{Date: day1.AddDate(0, 0, 2), Metrics: map[string]float64{"readiness": 65}},
		{Date: day1.AddDate(0, 0, 4), Metrics: map[string]float64{"pss10": 18}},
	}

	report := Correlate(h)

	if len(report.Pairs) != 0 {
		t.Errorf("expected no pairs, got %v", report.Pairs)
	}
	if _, ok := report.Lookup("readiness", "pss10"); ok {
		t.Error("readiness/pss10 should be omitted")
	}
}

func TestCorrelate(t *testing.T) {
	h := HistorySlice{
		{Date: day1, Metrics: map[string]float64{"readiness": 60, "training_load": 200, "hooper": 20, "nprs": 2}},
		{Date: day1.AddDate(0, 0, 1), Metrics: map[string]float64{"readiness": 70, "training_load": 300, "hooper": 15, "nprs": 2}},
		{Date: day1.AddDate(0, 0, 2), Metrics: map[string]float64{"readiness": 80, "training_load": 400, "hooper": 10, "nprs": 2}},
		{Date: day1.AddDate(0, 0, 3), Metrics: map[string]float64{"readiness": 90, "hooper": 5}},
	}

	report := Correlate(h)

	tests := []struct {
		a, b     string
		r        float64
		points   int
		expected Interpretation
	}{
		{"readiness", "training_load", 1, 3, StrongPositive},
		{"hooper", "readiness", -1, 4, StrongNegative},
		{"hooper", "training_load", -1, 3, StrongNegative},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			pair, ok := report.Lookup(tt.b, tt.a)
			if !ok {
				t.Fatalf("pair %s/%s missing", tt.a, tt.b)
			}
			if pair.MetricA > pair.MetricB {
				t.Errorf("pair not ordered: %s/%s", pair.MetricA, pair.MetricB)
			}
			if math.Abs(pair.R-tt.r) > 1e-9 {
				t.Errorf("R = %v, want %v", pair.R, tt.r)
			}
			if pair.Points != tt.points {
				t.Errorf("Points = %d, want %d", pair.Points, tt.points)
			}
			if pair.Interpretation != tt.expected {
				t.Errorf("Interpretation = %q, want %q", pair.Interpretation, tt.expected)
			}
		})
	}

	// nprs is constant so its coefficient is undefined
	for _, p := range report.Pairs {
		if p.MetricA == "nprs" || p.MetricB == "nprs" {
			t.Errorf("constant series should be omitted, got %+v", p)
		}
	}
	if len(report.Pairs) != 3 {
		t.Errorf("expected 3 pairs, got %d", len(report.Pairs))
	}
}

func TestCorrelateDoesNotMutateHistory(t *testing.T) {
	h := history("readiness", 1, 2, 3)
	for i := range h {
		h[i].Metrics["hooper"] = float64(10 - i)
	}

	Correlate(h)

	if len(h) != 3 || len(h[0].Metrics) != 2 || h[2].Metrics["readiness"] != 3 {
		t.Errorf("history modified: %v", h)
	}
}

func TestInterpretCorrelation(t *testing.T) {
	tests := []struct {
		r        float64
		expected Interpretation
	}{
		{1, StrongPositive},
		{0.5, StrongPositive},
		{0.49, Moderate},
		{0.3, Moderate},
		{-0.3, Moderate},
		{-0.45, Moderate},
		{0.29, WeakOrNone},
		{0, WeakOrNone},
		{-0.5, StrongNegative},
		{-0.9, StrongNegative},
	}

	for _, tt := range tests {
		if got := InterpretCorrelation(tt.r); got != tt.expected {
			t.Errorf("InterpretCorrelation(%v) = %q, want %q", tt.r, got, tt.expected)
		}
	}
}
