package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UpsertSession stores a training session. Imported sessions are matched on
// ExternalID so re-importing replaces rather than duplicates them.
func (db *DB) UpsertSession(s *TrainingSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Day == "" {
		s.Day = s.StartedAt.Format("2006-01-02")
	}
	if s.Source == "" {
		s.Source = SourceManual
	}

	_, err := db.Exec(`
		INSERT INTO training_sessions (
			id, athlete_id, day, started_at, name, duration_minutes,
			session_rpe, trimp, load, tss, source, external_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			day = excluded.day,
			started_at = excluded.started_at,
			name = excluded.name,
			duration_minutes = excluded.duration_minutes,
			session_rpe = excluded.session_rpe,
			trimp = excluded.trimp,
			load = excluded.load,
			tss = excluded.tss
	`,
		s.ID, s.AthleteID, s.Day, formatTime(s.StartedAt), s.Name, s.DurationMinutes,
		s.SessionRPE, s.TRIMP, s.Load, s.TSS, s.Source, s.ExternalID,
	)
	return err
}

// HasExternalSession reports whether an imported session is already stored
func (db *DB) HasExternalSession(externalID string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM training_sessions WHERE external_id = ?`, externalID).Scan(&count)
	return count > 0, err
}

// FirstSessionDay returns the day of an athlete's earliest session, or ""
// when they have none
func (db *DB) FirstSessionDay(athleteID string) (string, error) {
	var day sql.NullString
	err := db.QueryRow(`SELECT MIN(day) FROM training_sessions WHERE athlete_id = ?`, athleteID).Scan(&day)
	if err != nil {
		return "", err
	}
	return day.String, nil
}

// ListSessions returns an athlete's sessions from the given day onwards,
// oldest first
func (db *DB) ListSessions(athleteID string, since time.Time) ([]TrainingSession, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, day, started_at, name, duration_minutes,
			session_rpe, trimp, load, tss, source, external_id
		FROM training_sessions
		WHERE athlete_id = ? AND day >= ?
		ORDER BY started_at ASC
	`, athleteID, since.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []TrainingSession
	for rows.Next() {
		var s TrainingSession
		var startedAt string
		var externalID sql.NullString
		if err := rows.Scan(
			&s.ID, &s.AthleteID, &s.Day, &startedAt, &s.Name, &s.DurationMinutes,
			&s.SessionRPE, &s.TRIMP, &s.Load, &s.TSS, &s.Source, &externalID,
		); err != nil {
			return nil, err
		}
		t, err := parseTime(startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at for %s: %w", s.ID, err)
		}
		s.StartedAt = t
		if externalID.Valid {
			s.ExternalID = &externalID.String
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DailyLoads sums session load per day between from and to inclusive.
// Days without sessions are absent.
func (db *DB) DailyLoads(athleteID string, from, to time.Time) ([]DayLoad, error) {
	rows, err := db.Query(`
		SELECT day, SUM(load)
		FROM training_sessions
		WHERE athlete_id = ? AND day >= ? AND day <= ?
		GROUP BY day
		ORDER BY day ASC
	`, athleteID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loads []DayLoad
	for rows.Next() {
		var dl DayLoad
		if err := rows.Scan(&dl.Day, &dl.Load); err != nil {
			return nil, err
		}
		loads = append(loads, dl)
	}
	return loads, rows.Err()
}
