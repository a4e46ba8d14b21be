package assessment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func uniform(id Instrument, value int) ResponseSet {
	def, _ := Lookup(id)
	rs := ResponseSet{}
	for _, it := range def.Items {
		rs[it.ID] = value
	}
	return rs
}

func TestScoreDASSAnxietyBoundaries(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())

	tests := []struct {
		total int
		want  Band
	}{
		{0, BandNormal},
		{7, BandNormal},
		{8, BandMild},
		{9, BandMild},
		{10, BandModerate},
		{14, BandModerate},
		{15, BandSevere},
		{19, BandSevere},
		{20, BandExtremelySevere},
		{21, BandExtremelySevere},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			rs := uniform(DASS21Anxiety, 0)
			remaining := tt.total
			for i := 1; i <= 7 && remaining > 0; i++ {
				v := min(3, remaining)
				rs["a"+string(rune('0'+i))] = v
				remaining -= v
			}

			got, err := scorer.Score(DASS21Anxiety, rs, testTime)
			require.NoError(t, err)
			assert.Equal(t, float64(tt.total), got.RawScore)
			assert.Equal(t, tt.want, got.Band)
		})
	}
}

func TestScorePSS10ReverseItems(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())

	allZero, err := scorer.Score(PSS10, uniform(PSS10, 0), testTime)
	require.NoError(t, err)
	// q4, q5, q7 and q8 contribute 4 each when answered 0
	assert.Equal(t, 16.0, allZero.RawScore)
	assert.Equal(t, BandModerate, allZero.Band)

	allFour, err := scorer.Score(PSS10, uniform(PSS10, 4), testTime)
	require.NoError(t, err)
	assert.Equal(t, 24.0, allFour.RawScore)

	calm := uniform(PSS10, 0)
	for _, id := range []string{"q4", "q5", "q7", "q8"} {
		calm[id] = 4
	}
	got, err := scorer.Score(PSS10, calm, testTime)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.RawScore)
	assert.Equal(t, BandLow, got.Band)

	worst := uniform(PSS10, 4)
	for _, id := range []string{"q4", "q5", "q7", "q8"} {
		worst[id] = 0
	}
	got, err = scorer.Score(PSS10, worst, testTime)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.RawScore)
	assert.Equal(t, BandHigh, got.Band)
}

func TestScoreFantasticPolarityByIdentity(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())
	def, err := Lookup(Fantastic)
	require.NoError(t, err)
	require.Len(t, def.Items, 23)

	reversed := 0
	categories := map[string]bool{}
	for _, it := range def.Items {
		categories[it.Category] = true
		if it.Reverse {
			reversed++
		}
	}
	assert.Equal(t, 7, reversed)
	assert.Len(t, categories, 9)

	// Zero everywhere: only the seven negatively framed items score
	got, err := scorer.Score(Fantastic, uniform(Fantastic, 0), testTime)
	require.NoError(t, err)
	assert.InDelta(t, 100*28.0/92.0, got.RawScore, 1e-9)
	assert.Equal(t, BandVeryPoor, got.Band)

	best := uniform(Fantastic, 4)
	for _, it := range def.Items {
		if it.Reverse {
			best[it.ID] = 0
		}
	}
	got, err = scorer.Score(Fantastic, best, testTime)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.RawScore, 1e-9)
	assert.Equal(t, BandExcellent, got.Band)
	require.NotNil(t, got.NormalizedScore)
	assert.InDelta(t, got.RawScore, *got.NormalizedScore, 1e-9)

	got, err = scorer.Score(Fantastic, uniform(Fantastic, 4), testTime)
	require.NoError(t, err)
	assert.InDelta(t, 100*64.0/92.0, got.RawScore, 1e-9)
	assert.Equal(t, BandFair, got.Band)
}

func TestScoreSingleItemInstruments(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())

	tests := []struct {
		name       string
		instrument Instrument
		responses  ResponseSet
		raw        float64
		band       Band
	}{
		{"nprs none", NPRS, ResponseSet{"pain": 0}, 0, BandNone},
		{"nprs mild", NPRS, ResponseSet{"pain": 3}, 3, BandMild},
		{"nprs moderate", NPRS, ResponseSet{"pain": 4}, 4, BandModerate},
		{"nprs severe", NPRS, ResponseSet{"pain": 7}, 7, BandSevere},
		{"tqr very poor", TQR, ResponseSet{"recovery": 6}, 6, BandVeryPoor},
		{"tqr reasonable", TQR, ResponseSet{"recovery": 13}, 13, BandReasonable},
		{"tqr very good", TQR, ResponseSet{"recovery": 20}, 20, BandVeryGood},
		{"trimp", TRIMP, ResponseSet{"duration_minutes": 60, "session_rpe": 7}, 420, Unbanded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(tt.instrument, tt.responses, testTime)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, got.RawScore)
			assert.Equal(t, tt.band, got.Band)
			assert.Equal(t, testTime, got.Timestamp)
		})
	}
}

func TestScoreNormalized(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())

	got, err := scorer.Score(TQR, ResponseSet{"recovery": 13}, testTime)
	require.NoError(t, err)
	require.NotNil(t, got.NormalizedScore)
	assert.InDelta(t, 50.0, *got.NormalizedScore, 1e-9)

	trimp, err := scorer.Score(TRIMP, ResponseSet{"duration_minutes": 30, "session_rpe": 5}, testTime)
	require.NoError(t, err)
	assert.Nil(t, trimp.NormalizedScore)
}

func TestScoreHooperBands(t *testing.T) {
	rs := ResponseSet{"fatigue": 4, "stress": 3, "muscle_soreness": 4, "sleep_quality": 3}

	got, err := NewScorer(DefaultHooperBands()).Score(Hooper, rs, testTime)
	require.NoError(t, err)
	assert.Equal(t, 14.0, got.RawScore)
	assert.Equal(t, BandModerate, got.Band)

	strict := NewScorer(HooperBands{Low: 8, Moderate: 13})
	got, err = strict.Score(Hooper, rs, testTime)
	require.NoError(t, err)
	assert.Equal(t, BandHigh, got.Band)

	var zero Scorer
	got, err = zero.Score(Hooper, rs, testTime)
	require.NoError(t, err)
	assert.Equal(t, BandModerate, got.Band)
}

func TestHooperBandsValidate(t *testing.T) {
	assert.NoError(t, DefaultHooperBands().Validate())
	assert.ErrorIs(t, HooperBands{Low: 2, Moderate: 10}.Validate(), ErrRange)
	assert.ErrorIs(t, HooperBands{Low: 12, Moderate: 12}.Validate(), ErrRange)
	assert.ErrorIs(t, HooperBands{Low: 12, Moderate: 30}.Validate(), ErrRange)
}

func TestScoreReadiness(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())

	best := ResponseSet{
		"sleep_quality": 5, "sleep_hours": 9, "stress": 1, "muscle_soreness": 1,
		"energy": 5, "motivation": 5, "nutrition": 5, "hydration": 5,
	}
	got, err := scorer.Score(Readiness, best, testTime)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.RawScore, 1e-9)
	assert.Equal(t, BandExcellent, got.Band)

	middling := uniform(Readiness, 3)
	middling["sleep_hours"] = 8
	got, err = scorer.Score(Readiness, middling, testTime)
	require.NoError(t, err)
	assert.InDelta(t, 66.0, got.RawScore, 1e-9)
	assert.Equal(t, BandModerate, got.Band)
}

func TestScoreMentalFatigue(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())

	got, err := scorer.Score(MentalFatigue, uniform(MentalFatigue, 0), testTime)
	require.NoError(t, err)
	assert.Equal(t, BandLow, got.Band)

	got, err = scorer.Score(MentalFatigue, uniform(MentalFatigue, 1), testTime)
	require.NoError(t, err)
	assert.Equal(t, 14.0, got.RawScore)
	assert.Equal(t, BandModerate, got.Band)

	got, err = scorer.Score(MentalFatigue, uniform(MentalFatigue, 2), testTime)
	require.NoError(t, err)
	assert.Equal(t, BandHigh, got.Band)
}

func TestScoreErrors(t *testing.T) {
	scorer := NewScorer(DefaultHooperBands())

	t.Run("missing item", func(t *testing.T) {
		rs := uniform(PSS10, 2)
		delete(rs, "q7")
		_, err := scorer.Score(PSS10, rs, testTime)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "q7", verr.Field)
		assert.ErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrRange)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := scorer.Score(NPRS, ResponseSet{"pain": 11}, testTime)

		var rerr *RangeError
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, "pain", rerr.Field)
		assert.Equal(t, 10.0, rerr.Max)
		assert.ErrorIs(t, err, ErrRange)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := scorer.Score(NPRS, ResponseSet{"pain": 2, "mood": 3}, testTime)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "mood", verr.Field)
	})

	t.Run("unknown instrument", func(t *testing.T) {
		_, err := scorer.Score("sf36", ResponseSet{}, testTime)
		var cerr *ConfigurationError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "sf36", cerr.ID)
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestInstrumentsOrder(t *testing.T) {
	defs := Instruments()
	require.Len(t, defs, len(registry))
	assert.Equal(t, Readiness, defs[0].ID)
	for _, def := range defs {
		assert.NotEmpty(t, def.Items, def.ID)
	}
}

func TestSessionLoad(t *testing.T) {
	got, err := SessionLoad(testTime, 60, 7)
	require.NoError(t, err)
	assert.Equal(t, 420.0, got.TRIMP)
	assert.Equal(t, got.TRIMP, got.Load)
	assert.Equal(t, 49.0, got.TSS)

	_, err = SessionLoad(time.Time{}, 60, 7)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = SessionLoad(testTime, -5, 7)
	assert.ErrorIs(t, err, ErrRange)

	_, err = SessionLoad(testTime, 60, 11)
	var rerr *RangeError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "session_rpe", rerr.Field)
}

func TestTSSFromRPE(t *testing.T) {
	assert.Equal(t, 100.0, TSSFromRPE(60, 10))
	assert.Equal(t, 25.0, TSSFromRPE(60, 5))
	assert.Equal(t, 0.0, TSSFromRPE(90, 0))
}
