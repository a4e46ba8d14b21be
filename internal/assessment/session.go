package assessment

import (
	"math"
	"time"
)

// TrainingSessionLoad is the session-RPE load of one logged session
type TrainingSessionLoad struct {
	Date            time.Time
	DurationMinutes float64
	SessionRPE      int
	TRIMP           float64
	Load            float64
	TSS             float64
}

// SessionLoad computes the session-RPE TRIMP (duration x RPE) for a session.
// The training load fed to the workload window is the TRIMP itself.
func SessionLoad(date time.Time, durationMinutes float64, rpe int) (TrainingSessionLoad, error) {
	if date.IsZero() {
		return TrainingSessionLoad{}, &ValidationError{Instrument: TRIMP, Field: "date", Reason: "missing date"}
	}
	if math.IsNaN(durationMinutes) || durationMinutes < 0 || durationMinutes > MaxSessionMinutes {
		return TrainingSessionLoad{}, &RangeError{Instrument: TRIMP, Field: "duration_minutes", Value: durationMinutes, Min: 0, Max: MaxSessionMinutes}
	}
	if rpe < 0 || rpe > 10 {
		return TrainingSessionLoad{}, &RangeError{Instrument: TRIMP, Field: "session_rpe", Value: float64(rpe), Min: 0, Max: 10}
	}

	trimp := durationMinutes * float64(rpe)
	return TrainingSessionLoad{
		Date:            date,
		DurationMinutes: durationMinutes,
		SessionRPE:      rpe,
		TRIMP:           trimp,
		Load:            trimp,
		TSS:             TSSFromRPE(durationMinutes, rpe),
	}, nil
}

// TSSFromRPE estimates Training Stress Score treating RPE/10 as the
// intensity factor: seconds x IF^2 x 100 / 3600
func TSSFromRPE(durationMinutes float64, rpe int) float64 {
	intensity := float64(rpe) / 10
	return math.Round(durationMinutes * 60 * intensity * intensity * 100 / 3600)
}
