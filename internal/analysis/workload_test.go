package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"athlete-monitor/internal/assessment"
)

var day1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func ingestAll(t *testing.T, w *WorkloadWindow, loads ...float64) WorkloadMetrics {
	t.Helper()
	var m WorkloadMetrics
	for i, l := range loads {
		var err error
		m, err = w.Ingest(day1.AddDate(0, 0, i), l)
		if err != nil {
			t.Fatalf("Ingest(day %d) error: %v", i+1, err)
		}
	}
	return m
}

func TestWorkloadWindowSpike(t *testing.T) {
	w := NewWorkloadWindow()
	m := ingestAll(t, w, 100, 100, 100, 100, 100, 100, 100, 300)

	if math.Abs(m.AcuteLoad-900.0/7) > 1e-9 {
		t.Errorf("AcuteLoad = %v, want %v", m.AcuteLoad, 900.0/7)
	}
	// (7x100 + 300) / 8 days present
	if math.Abs(m.ChronicLoad-125) > 1e-9 {
		t.Errorf("ChronicLoad = %v, want 125", m.ChronicLoad)
	}
	if m.ACWR == nil || math.Abs(*m.ACWR-(900.0/7)/125) > 1e-9 {
		t.Fatalf("ACWR = %v, want ~1.0286", m.ACWR)
	}
	if m.RiskBand != RiskOptimal {
		t.Errorf("RiskBand = %q, want %q", m.RiskBand, RiskOptimal)
	}
	if m.WeeklyLoad != 900 {
		t.Errorf("WeeklyLoad = %v, want 900", m.WeeklyLoad)
	}
	// population stddev of six 100s and a 300 is ~69.99
	if m.Monotony == nil || math.Abs(*m.Monotony-1.837) > 0.001 {
		t.Fatalf("Monotony = %v, want ~1.837", m.Monotony)
	}
	if m.Strain == nil || math.Abs(*m.Strain-900**m.Monotony) > 1e-9 {
		t.Errorf("Strain = %v, want WeeklyLoad x Monotony", m.Strain)
	}
	if m.DaysPresent != 8 {
		t.Errorf("DaysPresent = %d, want 8", m.DaysPresent)
	}
}

func TestWorkloadWindowUndefinedMetrics(t *testing.T) {
	tests := []struct {
		name  string
		loads []float64
	}{
		{"single day", []float64{250}},
		{"all zero", []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ingestAll(t, NewWorkloadWindow(), tt.loads...)
			if m.ACWR != nil {
				t.Errorf("ACWR = %v, want nil", *m.ACWR)
			}
			if m.RiskBand != RiskInsufficientData {
				t.Errorf("RiskBand = %q, want %q", m.RiskBand, RiskInsufficientData)
			}
			if m.Monotony != nil || m.Strain != nil {
				t.Errorf("Monotony/Strain should be nil, got %v/%v", m.Monotony, m.Strain)
			}
		})
	}
}

func TestWorkloadWindowIdenticalLoads(t *testing.T) {
	m := ingestAll(t, NewWorkloadWindow(), 100, 100, 100, 100, 100, 100, 100)

	if m.Monotony != nil {
		t.Errorf("Monotony = %v, want nil for zero variance", *m.Monotony)
	}
	if m.Strain != nil {
		t.Errorf("Strain = %v, want nil", *m.Strain)
	}
	if m.AcuteLoad != 100 {
		t.Errorf("AcuteLoad = %v, want 100", m.AcuteLoad)
	}
	if m.ACWR == nil || *m.ACWR != 1 {
		t.Errorf("ACWR = %v, want 1", m.ACWR)
	}
}

func TestWorkloadWindowDuplicateDayOverwrites(t *testing.T) {
	w := NewWorkloadWindow()
	ingestAll(t, w, 100, 200)

	m, err := w.Ingest(day1.AddDate(0, 0, 1).Add(15*time.Hour), 400)
	if err != nil {
		t.Fatal(err)
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
	if m.ChronicLoad != 250 {
		t.Errorf("ChronicLoad = %v, want 250", m.ChronicLoad)
	}
}

func TestWorkloadWindowSparseDays(t *testing.T) {
	w := NewWorkloadWindow()
	if _, err := w.Ingest(day1, 100); err != nil {
		t.Fatal(err)
	}
	m, err := w.Ingest(day1.AddDate(0, 0, 9), 200)
	if err != nil {
		t.Fatal(err)
	}

	// Day 1 is outside the acute window; missing days are not zeros
	if m.AcuteLoad != 200 {
		t.Errorf("AcuteLoad = %v, want 200", m.AcuteLoad)
	}
	if m.ChronicLoad != 150 {
		t.Errorf("ChronicLoad = %v, want 150", m.ChronicLoad)
	}
	if m.RiskBand != RiskElevated {
		t.Errorf("RiskBand = %q, want %q", m.RiskBand, RiskElevated)
	}
	if m.Monotony != nil {
		t.Errorf("Monotony should be nil with one acute day")
	}
}

func TestWorkloadWindowEviction(t *testing.T) {
	w := NewWorkloadWindow()
	if _, err := w.Ingest(day1, 50); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Ingest(day1.AddDate(0, 0, 1), 60); err != nil {
		t.Fatal(err)
	}

	m, err := w.Ingest(day1.AddDate(0, 0, 28), 100)
	if err != nil {
		t.Fatal(err)
	}
	if w.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after evicting day 1", w.Len())
	}
	if m.ChronicLoad != 80 {
		t.Errorf("ChronicLoad = %v, want 80", m.ChronicLoad)
	}

	// A day that is already outside the window is dropped
	m, err = w.Ingest(day1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if w.Len() != 2 || m.ChronicLoad != 80 {
		t.Errorf("stale insert changed the window: len=%d chronic=%v", w.Len(), m.ChronicLoad)
	}

	loads := w.Loads()
	if !loads[0].Date.Equal(day1.AddDate(0, 0, 1)) {
		t.Errorf("oldest day = %v, want %v", loads[0].Date, day1.AddDate(0, 0, 1))
	}
}

func TestWorkloadWindowValidation(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		load float64
	}{
		{"negative load", day1, -1},
		{"NaN load", day1, math.NaN()},
		{"infinite load", day1, math.Inf(1)},
		{"zero date", time.Time{}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorkloadWindow()
			_, err := w.Ingest(tt.date, tt.load)
			var verr *assessment.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Ingest() error = %v, want ValidationError", err)
			}
			if w.Len() != 0 {
				t.Errorf("invalid ingest should not change the window")
			}
		})
	}
}

func TestClassifyACWR(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		acwr     *float64
		expected RiskBand
	}{
		{nil, RiskInsufficientData},
		{ptr(0), RiskUndertraining},
		{ptr(0.79), RiskUndertraining},
		{ptr(0.8), RiskOptimal},
		{ptr(1.3), RiskOptimal},
		{ptr(1.31), RiskElevated},
		{ptr(1.5), RiskElevated},
		{ptr(1.51), RiskHigh},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			if got := ClassifyACWR(tt.acwr); got != tt.expected {
				t.Errorf("ClassifyACWR() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDaysBetweenIgnoresClock(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{day1, day1, 0},
		{day1.Add(23 * time.Hour), day1.AddDate(0, 0, 1).Add(time.Hour), 1},
		{day1.Add(22 * time.Hour), day1.AddDate(0, 0, 27).Add(2 * time.Hour), 27},
		{day1.AddDate(0, 0, 3).Add(12 * time.Hour), day1.Add(6 * time.Hour), -3},
	}
	for _, tt := range tests {
		if got := daysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("daysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
