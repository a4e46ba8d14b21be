package recommend

import "math"

// VolumeZone labels how much training volume should be cut
type VolumeZone string

const (
	VolumeMinimal     VolumeZone = "minimal"
	VolumeLight       VolumeZone = "light"
	VolumeModerate    VolumeZone = "moderate"
	VolumeSignificant VolumeZone = "significant"
	VolumeSevere      VolumeZone = "severe"
)

// VolumeAdvice is the suggested reduction from planned volume
type VolumeAdvice struct {
	ReductionPct int
	Zone         VolumeZone
	Guidance     string
}

// VolumeReduction converts a 0-100 readiness score into a volume cut of
// 80 - 0.8 x score percent, clamped to 0-80
func VolumeReduction(readiness float64) VolumeAdvice {
	pct := math.Max(0, math.Min(80, 80-readiness*0.8))

	var advice VolumeAdvice
	switch {
	case pct < 10:
		advice = VolumeAdvice{Zone: VolumeMinimal, Guidance: "Train as planned."}
	case pct < 25:
		advice = VolumeAdvice{Zone: VolumeLight, Guidance: "Trim accessory work and keep the key session."}
	case pct < 40:
		advice = VolumeAdvice{Zone: VolumeModerate, Guidance: "Cut sets or distance and cap intensity."}
	case pct < 60:
		advice = VolumeAdvice{Zone: VolumeSignificant, Guidance: "Keep only technical or low-intensity work."}
	default:
		advice = VolumeAdvice{Zone: VolumeSevere, Guidance: "Rest or active recovery only."}
	}
	advice.ReductionPct = int(math.Round(pct))
	return advice
}
