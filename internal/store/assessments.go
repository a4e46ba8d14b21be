package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveAssessment inserts a scored assessment, assigning an ID if needed
func (db *DB) SaveAssessment(a *Assessment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Day == "" {
		a.Day = a.TakenAt.Format("2006-01-02")
	}

	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("encoding responses: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO assessments (
			id, athlete_id, instrument, taken_at, day,
			raw_score, normalized_score, band, responses
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.AthleteID, a.Instrument, formatTime(a.TakenAt), a.Day,
		a.RawScore, a.NormalizedScore, a.Band, string(responses),
	)
	return err
}

// ListAssessments returns an athlete's assessments from the given day
// onwards, oldest first
func (db *DB) ListAssessments(athleteID string, since time.Time) ([]Assessment, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, instrument, taken_at, day,
			raw_score, normalized_score, band, responses
		FROM assessments
		WHERE athlete_id = ? AND day >= ?
		ORDER BY taken_at ASC
	`, athleteID, since.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssessments(rows)
}

// RecentAssessments returns the newest assessments first
func (db *DB) RecentAssessments(athleteID string, limit int) ([]Assessment, error) {
	rows, err := db.Query(`
		SELECT id, athlete_id, instrument, taken_at, day,
			raw_score, normalized_score, band, responses
		FROM assessments
		WHERE athlete_id = ?
		ORDER BY taken_at DESC
		LIMIT ?
	`, athleteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssessments(rows)
}

// LatestAssessments returns the most recent assessment of each instrument
func (db *DB) LatestAssessments(athleteID string) ([]Assessment, error) {
	rows, err := db.Query(`
		SELECT a.id, a.athlete_id, a.instrument, a.taken_at, a.day,
			a.raw_score, a.normalized_score, a.band, a.responses
		FROM assessments a
		WHERE a.athlete_id = ?
			AND a.taken_at = (
				SELECT MAX(b.taken_at) FROM assessments b
				WHERE b.athlete_id = a.athlete_id AND b.instrument = a.instrument
			)
		GROUP BY a.instrument
		ORDER BY a.instrument
	`, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssessments(rows)
}

// CountAssessments returns the number of assessments stored for an athlete
func (db *DB) CountAssessments(athleteID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM assessments WHERE athlete_id = ?`, athleteID).Scan(&count)
	return count, err
}

func scanAssessments(rows *sql.Rows) ([]Assessment, error) {
	var out []Assessment
	for rows.Next() {
		var a Assessment
		var takenAt, responses string
		var normalized sql.NullFloat64
		if err := rows.Scan(
			&a.ID, &a.AthleteID, &a.Instrument, &takenAt, &a.Day,
			&a.RawScore, &normalized, &a.Band, &responses,
		); err != nil {
			return nil, err
		}

		t, err := parseTime(takenAt)
		if err != nil {
			return nil, fmt.Errorf("parsing taken_at for %s: %w", a.ID, err)
		}
		a.TakenAt = t
		if normalized.Valid {
			a.NormalizedScore = &normalized.Float64
		}
		if err := json.Unmarshal([]byte(responses), &a.Responses); err != nil {
			return nil, fmt.Errorf("decoding responses for %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
