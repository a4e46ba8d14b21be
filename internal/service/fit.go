package service

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/tormoder/fit"

	"athlete-monitor/internal/store"
)

// ImportFIT reads the first session of a FIT activity file and logs it with
// the athlete's session RPE. Re-importing the same file replaces the session.
func (s *RecordService) ImportFIT(athleteID string, r io.Reader, rpe int) (*store.TrainingSession, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding fit file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("reading fit activity: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("fit activity has no sessions")
	}
	session := activity.Sessions[0]

	seconds := session.GetTotalTimerTimeScaled()
	if math.IsNaN(seconds) || seconds <= 0 {
		seconds = session.GetTotalElapsedTimeScaled()
	}
	if math.IsNaN(seconds) || seconds < 0 {
		return nil, fmt.Errorf("fit session has no duration")
	}

	start := session.StartTime
	if start.IsZero() {
		start = decoded.FileId.TimeCreated
	}

	return s.LogSession(athleteID, SessionInput{
		Name:            fitSessionName(session.Sport.String()),
		StartedAt:       start,
		DurationMinutes: seconds / 60,
		SessionRPE:      rpe,
		Source:          store.SourceFIT,
		ExternalID:      FITExternalPrefix + strconv.FormatUint(uint64(decoded.FileId.SerialNumber), 10) + "-" + strconv.FormatInt(start.Unix(), 10),
	})
}

func fitSessionName(sport string) string {
	if sport == "" || sport == "Invalid" {
		return "FIT import"
	}
	return sport + " (FIT)"
}
