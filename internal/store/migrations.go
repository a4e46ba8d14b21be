package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS athletes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,

		// Scored questionnaires; responses are kept as JSON for re-scoring
		`CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			athlete_id TEXT NOT NULL,
			instrument TEXT NOT NULL,
			taken_at TEXT NOT NULL,
			day TEXT NOT NULL,
			raw_score REAL NOT NULL,
			normalized_score REAL,
			band TEXT NOT NULL,
			responses TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_assessments_athlete_day ON assessments(athlete_id, day)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_instrument ON assessments(athlete_id, instrument, taken_at)`,

		// Session-RPE training log; external_id dedupes imported sessions
		`CREATE TABLE IF NOT EXISTS training_sessions (
			id TEXT PRIMARY KEY,
			athlete_id TEXT NOT NULL,
			day TEXT NOT NULL,
			started_at TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			duration_minutes REAL NOT NULL,
			session_rpe INTEGER NOT NULL,
			trimp REAL NOT NULL,
			load REAL NOT NULL,
			tss REAL NOT NULL,
			source TEXT NOT NULL,
			external_id TEXT UNIQUE,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_athlete_day ON training_sessions(athlete_id, day)`,

		// Strava authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			strava_athlete_id INTEGER NOT NULL,
			athlete_id TEXT,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE SET NULL
		)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
