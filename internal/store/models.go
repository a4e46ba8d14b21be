package store

import "time"

// Session sources
const (
	SourceManual = "manual"
	SourceStrava = "strava"
	SourceFIT    = "fit"
)

// Athlete is a person being monitored
type Athlete struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Assessment is a scored questionnaire
type Assessment struct {
	ID              string         `db:"id"`
	AthleteID       string         `db:"athlete_id"`
	Instrument      string         `db:"instrument"`
	TakenAt         time.Time      `db:"taken_at"`
	Day             string         `db:"day"` // YYYY-MM-DD
	RawScore        float64        `db:"raw_score"`
	NormalizedScore *float64       `db:"normalized_score"` // nullable
	Band            string         `db:"band"`
	Responses       map[string]int `db:"responses"` // JSON
}

// TrainingSession is one logged session with its session-RPE load
type TrainingSession struct {
	ID              string    `db:"id"`
	AthleteID       string    `db:"athlete_id"`
	Day             string    `db:"day"` // YYYY-MM-DD
	StartedAt       time.Time `db:"started_at"`
	Name            string    `db:"name"`
	DurationMinutes float64   `db:"duration_minutes"`
	SessionRPE      int       `db:"session_rpe"`
	TRIMP           float64   `db:"trimp"`
	Load            float64   `db:"load"`
	TSS             float64   `db:"tss"`
	Source          string    `db:"source"`
	ExternalID      *string   `db:"external_id"` // nullable, set for imports
}

// DayLoad is the summed load of one day
type DayLoad struct {
	Day  string  `db:"day"`
	Load float64 `db:"load"`
}

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	StravaAthleteID int64     `db:"strava_athlete_id"`
	AthleteID       *string   `db:"athlete_id"` // local athlete that syncs receive
	AccessToken     string    `db:"access_token"`
	RefreshToken    string    `db:"refresh_token"`
	ExpiresAt       time.Time `db:"expires_at"`
}
