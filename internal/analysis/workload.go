package analysis

import (
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"athlete-monitor/internal/assessment"
)

// Window lengths in calendar days
const (
	AcuteDays   = 7
	ChronicDays = 28
)

// RiskBand is the injury-risk screening label derived from ACWR
type RiskBand string

const (
	RiskUndertraining    RiskBand = "undertraining"
	RiskOptimal          RiskBand = "optimal"
	RiskElevated         RiskBand = "elevated risk"
	RiskHigh             RiskBand = "high risk"
	RiskInsufficientData RiskBand = "insufficient data"
)

// WorkloadMetrics are derived from the window contents at one point in time
type WorkloadMetrics struct {
	Date        time.Time // latest day in the window
	DaysPresent int
	AcuteLoad   float64
	ChronicLoad float64
	WeeklyLoad  float64  // sum over the acute window
	ACWR        *float64 // nil when undefined
	Monotony    *float64
	Strain      *float64
	RiskBand    RiskBand
}

// WorkloadWindow holds up to 28 calendar days of daily load for one athlete.
// It is not safe for concurrent mutation.
type WorkloadWindow struct {
	loads  map[time.Time]float64
	latest time.Time
}

// NewWorkloadWindow returns an empty window
func NewWorkloadWindow() *WorkloadWindow {
	return &WorkloadWindow{loads: make(map[time.Time]float64)}
}

// Ingest records the load for a day, replacing any value already stored for
// that day, evicts days that fell out of the chronic window and returns the
// recomputed metrics. A day older than the window is ignored.
func (w *WorkloadWindow) Ingest(date time.Time, load float64) (WorkloadMetrics, error) {
	if date.IsZero() {
		return WorkloadMetrics{}, &assessment.ValidationError{Field: "date", Reason: "missing or malformed date"}
	}
	if math.IsNaN(load) || math.IsInf(load, 0) {
		return WorkloadMetrics{}, &assessment.ValidationError{Field: "load", Reason: "load is not a finite number"}
	}
	if load < 0 {
		return WorkloadMetrics{}, &assessment.ValidationError{Field: "load", Reason: "load must not be negative"}
	}

	day := civilDay(date)
	if w.loads == nil {
		w.loads = make(map[time.Time]float64)
	}

	if day.After(w.latest) {
		w.latest = day
		w.evict()
	} else if daysBetween(day, w.latest) >= ChronicDays {
		return w.Metrics(), nil
	}
	w.loads[day] = load

	return w.Metrics(), nil
}

// Len returns the number of days held
func (w *WorkloadWindow) Len() int {
	return len(w.loads)
}

// Loads returns the window contents in date order
func (w *WorkloadWindow) Loads() []DailyLoad {
	out := make([]DailyLoad, 0, len(w.loads))
	for d, l := range w.loads {
		out = append(out, DailyLoad{Date: d, Load: l})
	}
	slices.SortFunc(out, func(a, b DailyLoad) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// Metrics recomputes the derived values from the current window contents
func (w *WorkloadWindow) Metrics() WorkloadMetrics {
	m := WorkloadMetrics{
		Date:        w.latest,
		DaysPresent: len(w.loads),
		RiskBand:    RiskInsufficientData,
	}
	if len(w.loads) == 0 {
		return m
	}

	var acute, chronic []float64
	for _, dl := range w.Loads() {
		chronic = append(chronic, dl.Load)
		if daysBetween(dl.Date, w.latest) < AcuteDays {
			acute = append(acute, dl.Load)
		}
	}

	m.AcuteLoad = stat.Mean(acute, nil)
	m.ChronicLoad = stat.Mean(chronic, nil)
	m.WeeklyLoad = floats.Sum(acute)

	if len(chronic) >= 2 && m.ChronicLoad > 0 {
		acwr := m.AcuteLoad / m.ChronicLoad
		m.ACWR = &acwr
	}
	m.RiskBand = ClassifyACWR(m.ACWR)

	if len(acute) >= 2 {
		mean, std := stat.PopMeanStdDev(acute, nil)
		if std > zeroVariance {
			monotony := mean / std
			strain := m.WeeklyLoad * monotony
			m.Monotony = &monotony
			m.Strain = &strain
		}
	}

	return m
}

// ClassifyACWR maps an acute:chronic ratio to a risk band.
// 0.8 and 1.3 both fall in the optimal band.
func ClassifyACWR(acwr *float64) RiskBand {
	if acwr == nil {
		return RiskInsufficientData
	}
	switch r := *acwr; {
	case r < 0.8:
		return RiskUndertraining
	case r <= 1.3:
		return RiskOptimal
	case r <= 1.5:
		return RiskElevated
	default:
		return RiskHigh
	}
}

// zeroVariance treats rounding noise in identical loads as no variation
const zeroVariance = 1e-9

func (w *WorkloadWindow) evict() {
	for d := range w.loads {
		if daysBetween(d, w.latest) >= ChronicDays {
			delete(w.loads, d)
		}
	}
}

// daysBetween counts calendar days from a to b, ignoring the clock part
func daysBetween(a, b time.Time) int {
	return int(civilDay(b).Sub(civilDay(a)).Hours() / 24)
}
