package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"athlete-monitor/internal/assessment"
	"athlete-monitor/internal/recommend"
	"athlete-monitor/internal/store"
)

// RecordService scores and persists new assessments and sessions
type RecordService struct {
	store  *store.DB
	scorer *assessment.Scorer
}

// NewRecordService creates a new record service
func NewRecordService(db *store.DB, scorer *assessment.Scorer) *RecordService {
	return &RecordService{store: db, scorer: scorer}
}

// RecordedAssessment is a stored assessment with its score and guidance
type RecordedAssessment struct {
	Assessment store.Assessment
	Result     assessment.ScoreResult
	Guidance   string
}

// RecordAssessment scores responses and stores them. Responses that fail
// validation are never persisted.
func (s *RecordService) RecordAssessment(athleteID string, id assessment.Instrument, responses assessment.ResponseSet, at time.Time) (*RecordedAssessment, error) {
	result, err := s.scorer.Score(id, responses, at)
	if err != nil {
		return nil, err
	}

	a := store.Assessment{
		AthleteID:       athleteID,
		Instrument:      string(id),
		TakenAt:         at,
		RawScore:        result.RawScore,
		NormalizedScore: result.NormalizedScore,
		Band:            string(result.Band),
		Responses:       responses,
	}
	if err := s.store.SaveAssessment(&a); err != nil {
		return nil, fmt.Errorf("saving assessment: %w", err)
	}

	rec := &RecordedAssessment{Assessment: a, Result: result}
	if result.Band != assessment.Unbanded {
		rec.Guidance, err = recommend.ForScore(result)
		if err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"athlete":    athleteID,
		"instrument": id,
		"score":      result.RawScore,
		"band":       result.Band,
	}).Info("assessment recorded")
	return rec, nil
}

// SessionInput describes one training session to log
type SessionInput struct {
	Name            string
	StartedAt       time.Time
	DurationMinutes float64
	SessionRPE      int
	Source          string
	ExternalID      string
}

// LogSession computes the session-RPE load and stores the session.
// Sessions with an ExternalID replace an earlier import of the same session.
func (s *RecordService) LogSession(athleteID string, in SessionInput) (*store.TrainingSession, error) {
	ts, err := buildSession(athleteID, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertSession(ts); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"athlete":  athleteID,
		"source":   ts.Source,
		"duration": ts.DurationMinutes,
		"rpe":      ts.SessionRPE,
		"load":     ts.Load,
	}).Info("session logged")
	return ts, nil
}

func buildSession(athleteID string, in SessionInput) (*store.TrainingSession, error) {
	load, err := assessment.SessionLoad(in.StartedAt, in.DurationMinutes, in.SessionRPE)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Training session"
	}
	source := in.Source
	if source == "" {
		source = store.SourceManual
	}

	ts := &store.TrainingSession{
		AthleteID:       athleteID,
		StartedAt:       in.StartedAt,
		Name:            name,
		DurationMinutes: load.DurationMinutes,
		SessionRPE:      load.SessionRPE,
		TRIMP:           load.TRIMP,
		Load:            load.Load,
		TSS:             load.TSS,
		Source:          source,
	}
	if in.ExternalID != "" {
		ext := in.ExternalID
		ts.ExternalID = &ext
	}
	return ts, nil
}
