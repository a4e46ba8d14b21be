package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"athlete-monitor/internal/assessment"
	"athlete-monitor/internal/store"
)

var day1 = time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)

// openTestDB creates an in-memory SQLite database with migrations applied
func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type fixture struct {
	db      *store.DB
	athlete *store.Athlete
	record  *RecordService
	query   *QueryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	athlete, err := db.CreateAthlete("Ana Souza")
	require.NoError(t, err)
	return &fixture{
		db:      db,
		athlete: athlete,
		record:  NewRecordService(db, assessment.NewScorer(assessment.DefaultHooperBands())),
		query:   NewQueryService(db, 0, 0),
	}
}

func (f *fixture) logSession(t *testing.T, at time.Time, minutes float64, rpe int) {
	t.Helper()
	_, err := f.record.LogSession(f.athlete.ID, SessionInput{StartedAt: at, DurationMinutes: minutes, SessionRPE: rpe})
	require.NoError(t, err)
}

func (f *fixture) assess(t *testing.T, id assessment.Instrument, rs assessment.ResponseSet, at time.Time) {
	t.Helper()
	_, err := f.record.RecordAssessment(f.athlete.ID, id, rs, at)
	require.NoError(t, err)
}

func readiness(level int, sleepHours int) assessment.ResponseSet {
	return assessment.ResponseSet{
		"sleep_quality": level, "sleep_hours": sleepHours, "stress": 6 - level, "muscle_soreness": 6 - level,
		"energy": level, "motivation": level, "nutrition": level, "hydration": level,
	}
}
