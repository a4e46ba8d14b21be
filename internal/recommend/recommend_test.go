package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athlete-monitor/internal/analysis"
	"athlete-monitor/internal/assessment"
)

func TestEveryInstrumentBandHasGuidance(t *testing.T) {
	for _, def := range assessment.Instruments() {
		for _, band := range def.Bands {
			text, err := Recommend(MetricID(def.ID), string(band))
			require.NoError(t, err, "%s/%s", def.ID, band)
			assert.NotEmpty(t, text)
		}
	}
}

func TestEveryRiskBandHasGuidance(t *testing.T) {
	bands := []analysis.RiskBand{
		analysis.RiskUndertraining,
		analysis.RiskOptimal,
		analysis.RiskElevated,
		analysis.RiskHigh,
		analysis.RiskInsufficientData,
	}
	for _, band := range bands {
		text, err := ForWorkload(analysis.WorkloadMetrics{RiskBand: band})
		require.NoError(t, err, band)
		assert.NotEmpty(t, text)
	}
}

func TestRecommendUnknown(t *testing.T) {
	tests := []struct {
		name   string
		metric MetricID
		band   string
	}{
		{"unknown metric", "vo2max", "high"},
		{"unknown band", MetricID(assessment.PSS10), "extremely severe"},
		{"unbanded instrument", MetricID(assessment.TRIMP), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Recommend(tt.metric, tt.band)
			assert.ErrorIs(t, err, assessment.ErrConfiguration)
		})
	}
}

func TestForScore(t *testing.T) {
	scorer := assessment.NewScorer(assessment.DefaultHooperBands())
	result, err := scorer.Score(assessment.NPRS, assessment.ResponseSet{"pain": 8}, time.Now())
	require.NoError(t, err)

	text, err := ForScore(result)
	require.NoError(t, err)
	assert.Contains(t, text, "Severe pain")
}

func TestVolumeReduction(t *testing.T) {
	tests := []struct {
		readiness float64
		pct       int
		zone      VolumeZone
	}{
		{100, 0, VolumeMinimal},
		{95, 4, VolumeMinimal},
		{85, 12, VolumeLight},
		{70, 24, VolumeLight},
		{60, 32, VolumeModerate},
		{40, 48, VolumeSignificant},
		{20, 64, VolumeSevere},
		{0, 80, VolumeSevere},
		{-10, 80, VolumeSevere},
	}

	for _, tt := range tests {
		got := VolumeReduction(tt.readiness)
		assert.Equal(t, tt.pct, got.ReductionPct, "readiness %v", tt.readiness)
		assert.Equal(t, tt.zone, got.Zone, "readiness %v", tt.readiness)
		assert.NotEmpty(t, got.Guidance)
	}
}
