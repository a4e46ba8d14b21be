package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateAthlete adds a new athlete with a unique name
func (db *DB) CreateAthlete(name string) (*Athlete, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("athlete name is required")
	}

	if _, err := db.GetAthleteByName(name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAthlete, name)
	} else if !errors.Is(err, ErrAthleteNotFound) {
		return nil, err
	}

	a := &Athlete{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := db.Exec(`INSERT INTO athletes (id, name, created_at) VALUES (?, ?, ?)`,
		a.ID, a.Name, formatTime(a.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("inserting athlete: %w", err)
	}
	return a, nil
}

// GetAthlete retrieves an athlete by ID
func (db *DB) GetAthlete(id string) (*Athlete, error) {
	return scanAthlete(db.QueryRow(`SELECT id, name, created_at FROM athletes WHERE id = ?`, id))
}

// GetAthleteByName retrieves an athlete by name, ignoring case
func (db *DB) GetAthleteByName(name string) (*Athlete, error) {
	return scanAthlete(db.QueryRow(`
		SELECT id, name, created_at FROM athletes WHERE name = ? COLLATE NOCASE
	`, strings.TrimSpace(name)))
}

// ListAthletes returns all athletes ordered by name
func (db *DB) ListAthletes() ([]Athlete, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM athletes ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var athletes []Athlete
	for rows.Next() {
		var a Athlete
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = parseTime(createdAt)
		athletes = append(athletes, a)
	}
	return athletes, rows.Err()
}

func scanAthlete(row *sql.Row) (*Athlete, error) {
	var a Athlete
	var createdAt string
	err := row.Scan(&a.ID, &a.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAthleteNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt, _ = parseTime(createdAt)
	return &a, nil
}
