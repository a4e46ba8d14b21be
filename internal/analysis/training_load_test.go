package analysis

import (
	"math"
	"testing"
	"time"
)

func TestCalculateFitnessTrend(t *testing.T) {
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		dailyLoads []DailyLoad
		checkFn    func(t *testing.T, metrics []FitnessMetrics)
	}{
		{
			name:       "empty daily loads",
			dailyLoads: []DailyLoad{},
			checkFn: func(t *testing.T, metrics []FitnessMetrics) {
				if metrics != nil {
					t.Errorf("expected nil, got %v", metrics)
				}
			},
		},
		{
			name: "single day load",
			dailyLoads: []DailyLoad{
				{Date: baseDate, Load: 420},
			},
			checkFn: func(t *testing.T, metrics []FitnessMetrics) {
				if len(metrics) != 1 {
					t.Fatalf("expected 1 metric, got %d", len(metrics))
				}
				// CTL = 0 + 1/42 * 420 = 10
				// ATL = 0 + 1/7 * 420 = 60
				if math.Abs(metrics[0].CTL-10) > 0.01 {
					t.Errorf("CTL = %v, want 10", metrics[0].CTL)
				}
				if math.Abs(metrics[0].ATL-60) > 0.01 {
					t.Errorf("ATL = %v, want 60", metrics[0].ATL)
				}
				if math.Abs(metrics[0].TSB-(-50)) > 0.01 {
					t.Errorf("TSB = %v, want -50", metrics[0].TSB)
				}
			},
		},
		{
			name: "consecutive daily loads - builds fitness",
			dailyLoads: func() []DailyLoad {
				loads := make([]DailyLoad, 14)
				for i := range loads {
					loads[i] = DailyLoad{
						Date: baseDate.AddDate(0, 0, i),
						Load: 300,
					}
				}
				return loads
			}(),
			checkFn: func(t *testing.T, metrics []FitnessMetrics) {
				if len(metrics) != 14 {
					t.Fatalf("expected 14 metrics, got %d", len(metrics))
				}
				for i := 1; i < len(metrics); i++ {
					if metrics[i].CTL <= metrics[i-1].CTL {
						t.Errorf("CTL should increase: day %d CTL=%v, day %d CTL=%v",
							i-1, metrics[i-1].CTL, i, metrics[i].CTL)
					}
				}
				// ATL responds faster than CTL
				if metrics[6].ATL <= metrics[6].CTL {
					t.Errorf("After 7 days, ATL should be higher than CTL: ATL=%v, CTL=%v",
						metrics[6].ATL, metrics[6].CTL)
				}
			},
		},
		{
			name: "gap in training - fills missing days",
			dailyLoads: []DailyLoad{
				{Date: baseDate, Load: 300},
				{Date: baseDate.AddDate(0, 0, 5), Load: 300},
			},
			checkFn: func(t *testing.T, metrics []FitnessMetrics) {
				if len(metrics) != 6 {
					t.Fatalf("expected 6 metrics (filling gaps), got %d", len(metrics))
				}
				for i := range metrics {
					expected := baseDate.AddDate(0, 0, i)
					if !metrics[i].Date.Equal(expected) {
						t.Errorf("metric %d date = %v, want %v", i, metrics[i].Date, expected)
					}
				}
				if metrics[4].ATL >= metrics[0].ATL {
					t.Errorf("ATL should decay during rest: day 0 ATL=%v, day 4 ATL=%v",
						metrics[0].ATL, metrics[4].ATL)
				}
			},
		},
		{
			name: "multiple sessions same day - sums load",
			dailyLoads: []DailyLoad{
				{Date: baseDate.Add(7 * time.Hour), Load: 150},
				{Date: baseDate.Add(18 * time.Hour), Load: 150},
			},
			checkFn: func(t *testing.T, metrics []FitnessMetrics) {
				if len(metrics) != 1 {
					t.Fatalf("expected 1 metric, got %d", len(metrics))
				}
				singleLoad := CalculateFitnessTrend([]DailyLoad{{Date: baseDate, Load: 300}})
				if math.Abs(metrics[0].CTL-singleLoad[0].CTL) > 0.01 {
					t.Errorf("CTL with split loads = %v, want %v", metrics[0].CTL, singleLoad[0].CTL)
				}
			},
		},
		{
			name: "unsorted input - should still work",
			dailyLoads: []DailyLoad{
				{Date: baseDate.AddDate(0, 0, 2), Load: 100},
				{Date: baseDate, Load: 100},
				{Date: baseDate.AddDate(0, 0, 1), Load: 100},
			},
			checkFn: func(t *testing.T, metrics []FitnessMetrics) {
				if len(metrics) != 3 {
					t.Fatalf("expected 3 metrics, got %d", len(metrics))
				}
				if !metrics[0].Date.Before(metrics[1].Date) {
					t.Error("metrics should be sorted by date")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateFitnessTrend(tt.dailyLoads)
			tt.checkFn(t, result)
		})
	}
}

func TestCalculateFitnessTrendDoesNotReorderInput(t *testing.T) {
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loads := []DailyLoad{
		{Date: baseDate.AddDate(0, 0, 1), Load: 100},
		{Date: baseDate, Load: 200},
	}

	CalculateFitnessTrend(loads)

	if loads[0].Load != 100 || loads[1].Load != 200 {
		t.Errorf("input reordered: %v", loads)
	}
}

func TestGetCurrentFitness(t *testing.T) {
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	empty := GetCurrentFitness(nil)
	if empty.CTL != 0 || empty.ATL != 0 || empty.TSB != 0 {
		t.Errorf("expected zero metrics, got CTL=%v, ATL=%v, TSB=%v", empty.CTL, empty.ATL, empty.TSB)
	}

	current := GetCurrentFitness([]DailyLoad{
		{Date: baseDate, Load: 100},
		{Date: baseDate.AddDate(0, 0, 1), Load: 50},
		{Date: baseDate.AddDate(0, 0, 2), Load: 200},
	})
	expectedDate := baseDate.AddDate(0, 0, 2)
	if !current.Date.Equal(expectedDate) {
		t.Errorf("Date = %v, want %v", current.Date, expectedDate)
	}
}

func TestFormDescription(t *testing.T) {
	tests := []struct {
		tsb      float64
		expected string
	}{
		{30, "Very fresh (possibly detrained)"},
		{25, "Fresh and ready to compete"},
		{10.1, "Fresh and ready to compete"},
		{10, "Neutral - good for training"},
		{0.1, "Neutral - good for training"},
		{0, "Slightly fatigued"},
		{-9.9, "Slightly fatigued"},
		{-10, "Tired but building fitness"},
		{-24.9, "Tired but building fitness"},
		{-25, "Very fatigued - rest needed"},
		{-50, "Very fatigued - rest needed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormDescription(tt.tsb)
			if result != tt.expected {
				t.Errorf("FormDescription(%v) = %q, want %q", tt.tsb, result, tt.expected)
			}
		})
	}
}

func TestReadinessFromForm(t *testing.T) {
	tests := []struct {
		tsb      float64
		expected float64
	}{
		{-50, 0},
		{-30, 0},
		{-10, 50},
		{0, 75},
		{10, 100},
		{40, 100},
	}

	for _, tt := range tests {
		result := ReadinessFromForm(tt.tsb)
		if result != tt.expected {
			t.Errorf("ReadinessFromForm(%v) = %v, want %v", tt.tsb, result, tt.expected)
		}
	}
}
