package assessment

import (
	"maps"
	"math"
	"slices"
	"time"
)

// Instrument identifies a questionnaire or load measure
type Instrument string

const (
	Hooper        Instrument = "hooper"
	TQR           Instrument = "tqr"
	NPRS          Instrument = "nprs"
	DASS21Anxiety Instrument = "dass21_anxiety"
	DASS21Stress  Instrument = "dass21_stress"
	PSS10         Instrument = "pss10"
	Fantastic     Instrument = "fantastic"
	MentalFatigue Instrument = "mfs"
	Readiness     Instrument = "readiness"
	TRIMP         Instrument = "trimp"
)

// Band is a severity or quality label attached to a score
type Band string

const (
	BandNone            Band = "none"
	BandNormal          Band = "normal"
	BandMild            Band = "mild"
	BandModerate        Band = "moderate"
	BandSevere          Band = "severe"
	BandExtremelySevere Band = "extremely severe"
	BandLow             Band = "low"
	BandHigh            Band = "high"
	BandVeryLow         Band = "very low"
	BandVeryPoor        Band = "very poor"
	BandPoor            Band = "poor"
	BandReasonable      Band = "reasonable"
	BandFair            Band = "fair"
	BandGood            Band = "good"
	BandVeryGood        Band = "very good"
	BandExcellent       Band = "excellent"

	// Unbanded is used by measures that only feed other calculations
	Unbanded Band = ""
)

// ResponseSet maps question IDs to integer responses
type ResponseSet map[string]int

// Item is a single question of an instrument
type Item struct {
	ID       string
	Text     string
	Category string
	Min      int
	Max      int
	Reverse  bool // negatively framed, scored as Min+Max-response
}

// Effective returns the contribution of a response after polarity is applied
func (it Item) Effective(response int) int {
	if it.Reverse {
		return it.Min + it.Max - response
	}
	return response
}

// Definition is the static description of an instrument
type Definition struct {
	ID         Instrument
	Name       string
	Items      []Item
	ScoreMin   float64
	ScoreMax   float64
	Normalized bool   // whether NormalizedScore is reported
	Bands      []Band // every band the instrument can produce, best first

	compute  func(items []Item, responses ResponseSet) float64
	classify func(score float64) Band
}

// ScoreResult is the outcome of scoring one completed instrument
type ScoreResult struct {
	Instrument      Instrument
	RawScore        float64
	NormalizedScore *float64 // 0-100, nil where it does not apply
	Band            Band
	Timestamp       time.Time
}

// HooperBands holds the caller-chosen upper bounds for Hooper index bands.
// Lower index means better recovery.
type HooperBands struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
}

// DefaultHooperBands returns the thresholds used when none are configured
func DefaultHooperBands() HooperBands {
	return HooperBands{Low: 12, Moderate: 19}
}

// Classify maps a Hooper index to its band
func (b HooperBands) Classify(score float64) Band {
	switch {
	case score <= float64(b.Low):
		return BandLow
	case score <= float64(b.Moderate):
		return BandModerate
	default:
		return BandHigh
	}
}

// Validate checks that the thresholds are ordered and inside the 4-28 index range
func (b HooperBands) Validate() error {
	if b.Low < 4 || b.Low >= 28 {
		return &RangeError{Instrument: Hooper, Field: "bands.low", Value: float64(b.Low), Min: 4, Max: 27}
	}
	if b.Moderate <= b.Low || b.Moderate > 28 {
		return &RangeError{Instrument: Hooper, Field: "bands.moderate", Value: float64(b.Moderate), Min: float64(b.Low + 1), Max: 28}
	}
	return nil
}

// Scorer turns response sets into scores
type Scorer struct {
	hooper HooperBands
}

// NewScorer creates a scorer using the given Hooper thresholds
func NewScorer(hooper HooperBands) *Scorer {
	return &Scorer{hooper: hooper}
}

// Lookup returns the definition of an instrument
func Lookup(id Instrument) (Definition, error) {
	def, ok := registry[id]
	if !ok {
		return Definition{}, &ConfigurationError{Kind: "instrument", ID: string(id)}
	}
	return def, nil
}

// Instruments returns every known instrument in display order
func Instruments() []Definition {
	defs := make([]Definition, 0, len(order))
	for _, id := range order {
		defs = append(defs, registry[id])
	}
	return defs
}

// Score validates responses against the instrument's item table and scores them
func (s *Scorer) Score(id Instrument, responses ResponseSet, at time.Time) (ScoreResult, error) {
	def, err := Lookup(id)
	if err != nil {
		return ScoreResult{}, err
	}
	if err := def.Validate(responses); err != nil {
		return ScoreResult{}, err
	}

	score := def.compute(def.Items, responses)

	classify := def.classify
	if id == Hooper && s.hooper != (HooperBands{}) {
		classify = s.hooper.Classify
	}

	result := ScoreResult{
		Instrument: id,
		RawScore:   score,
		Timestamp:  at,
	}
	if classify != nil {
		result.Band = classify(score)
	}
	if def.Normalized && def.ScoreMax > def.ScoreMin {
		n := (score - def.ScoreMin) / (def.ScoreMax - def.ScoreMin) * 100
		result.NormalizedScore = &n
	}
	return result, nil
}

// Validate checks that every item is answered within its scale and that
// no unknown keys are present
func (d Definition) Validate(responses ResponseSet) error {
	known := make(map[string]bool, len(d.Items))
	for _, it := range d.Items {
		known[it.ID] = true
		v, ok := responses[it.ID]
		if !ok {
			return &ValidationError{Instrument: d.ID, Field: it.ID, Reason: "missing response"}
		}
		if v < it.Min || v > it.Max {
			return &RangeError{
				Instrument: d.ID,
				Field:      it.ID,
				Value:      float64(v),
				Min:        float64(it.Min),
				Max:        float64(it.Max),
			}
		}
	}
	for _, key := range slices.Sorted(maps.Keys(responses)) {
		if !known[key] {
			return &ValidationError{Instrument: d.ID, Field: key, Reason: "unknown question"}
		}
	}
	return nil
}

func sumScore(items []Item, responses ResponseSet) float64 {
	total := 0
	for _, it := range items {
		total += it.Effective(responses[it.ID])
	}
	return float64(total)
}

// percentScore expresses the effective sum as a share of the maximum possible
func percentScore(items []Item, responses ResponseSet) float64 {
	total, possible := 0, 0
	for _, it := range items {
		total += it.Effective(responses[it.ID]) - it.Min
		possible += it.Max - it.Min
	}
	if possible == 0 {
		return 0
	}
	return float64(total) / float64(possible) * 100
}

func productScore(items []Item, responses ResponseSet) float64 {
	product := 1.0
	for _, it := range items {
		product *= float64(responses[it.ID])
	}
	return product
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
