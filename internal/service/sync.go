package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"athlete-monitor/internal/store"
	"athlete-monitor/internal/strava"
)

// ActivitySource is the part of the Strava client the sync needs
type ActivitySource interface {
	GetActivities(ctx context.Context, after time.Time, page, perPage int) ([]strava.Activity, error)
	GetActivity(ctx context.Context, id int64) (*strava.Activity, error)
}

// SyncService imports Strava activities as training sessions
type SyncService struct {
	client   ActivitySource
	store    *store.DB
	recorder *RecordService
}

// NewSyncService creates a new sync service
func NewSyncService(client ActivitySource, db *store.DB, recorder *RecordService) *SyncService {
	return &SyncService{client: client, store: db, recorder: recorder}
}

// Sync phases
const (
	PhaseListing   = "listing"
	PhaseImporting = "importing"
	PhaseDone      = "done"
)

// SyncProgress reports sync progress
type SyncProgress struct {
	Phase           string
	Total           int
	Completed       int
	CurrentActivity string
	Error           error
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	Fetched       int
	Imported      int
	AlreadyStored int
	SkippedNoRPE  int
	Errors        []error
}

// Err combines the per-activity errors, or nil if there were none
func (r *SyncResult) Err() error {
	return multierr.Combine(r.Errors...)
}

// SyncStrava imports every activity started since the last sync into
// athleteID's sessions. Activities the athlete has not rated for perceived
// exertion are skipped and will be offered again by the next sync.
// Progress updates are sent on progress, which is closed on return.
func (s *SyncService) SyncStrava(ctx context.Context, athleteID string, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}
	report := func(p SyncProgress) {
		if progress == nil {
			return
		}
		select {
		case progress <- p:
		case <-ctx.Done():
		}
	}

	after, err := s.store.GetSyncTime(LastStravaSyncKey)
	if err != nil {
		return nil, fmt.Errorf("reading last sync: %w", err)
	}
	log := logrus.WithFields(logrus.Fields{"athlete": athleteID, "after": after})
	log.Info("strava sync started")

	report(SyncProgress{Phase: PhaseListing})
	var activities []strava.Activity
	for page := 1; ; page++ {
		batch, err := s.client.GetActivities(ctx, after, page, strava.MaxPerPage)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}
		activities = append(activities, batch...)
		report(SyncProgress{Phase: PhaseListing, Completed: len(activities)})
		if len(batch) < strava.MaxPerPage {
			break
		}
	}

	result := &SyncResult{Fetched: len(activities)}
	marker := after
	// oldest activity that must be offered again: unrated or failed
	var oldestRetry time.Time
	retry := func(a strava.Activity) {
		if oldestRetry.IsZero() || a.StartDate.Before(oldestRetry) {
			oldestRetry = a.StartDate
		}
	}

	for i, a := range activities {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		report(SyncProgress{Phase: PhaseImporting, Total: len(activities), Completed: i, CurrentActivity: a.Name})

		imported, err := s.importActivity(ctx, athleteID, a)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("activity %d: %w", a.ID, err))
			report(SyncProgress{Phase: PhaseImporting, Total: len(activities), Completed: i, Error: err})
			retry(a)
		case imported == importSkipped:
			result.SkippedNoRPE++
			retry(a)
		case imported == importExisting:
			result.AlreadyStored++
		default:
			result.Imported++
		}
		if a.StartDate.After(marker) {
			marker = a.StartDate
		}
	}

	// Strava's after is exclusive; step back so unrated and failed
	// activities come back
	if !oldestRetry.IsZero() {
		marker = oldestRetry.Add(-time.Second)
	}
	if marker.After(after) {
		if err := s.store.SetSyncTime(LastStravaSyncKey, marker); err != nil {
			return result, fmt.Errorf("saving sync marker: %w", err)
		}
	}

	report(SyncProgress{Phase: PhaseDone, Total: len(activities), Completed: len(activities)})
	log.WithFields(logrus.Fields{
		"fetched":  result.Fetched,
		"imported": result.Imported,
		"existing": result.AlreadyStored,
		"unrated":  result.SkippedNoRPE,
		"errors":   len(result.Errors),
	}).Info("strava sync finished")
	return result, nil
}

type importOutcome int

const (
	importStored importOutcome = iota
	importExisting
	importSkipped
)

func (s *SyncService) importActivity(ctx context.Context, athleteID string, a strava.Activity) (importOutcome, error) {
	externalID := StravaExternalPrefix + strconv.FormatInt(a.ID, 10)
	exists, err := s.store.HasExternalSession(externalID)
	if err != nil {
		return importStored, err
	}
	if exists {
		return importExisting, nil
	}

	detail, err := s.client.GetActivity(ctx, a.ID)
	if err != nil {
		return importStored, err
	}
	rpe, ok := detail.SessionRPE()
	if !ok {
		logrus.WithField("activity", a.ID).Debug("skipping activity without perceived exertion")
		return importSkipped, nil
	}

	_, err = s.recorder.LogSession(athleteID, SessionInput{
		Name:            detail.Name,
		StartedAt:       detail.StartDate,
		DurationMinutes: detail.DurationMinutes(),
		SessionRPE:      rpe,
		Source:          store.SourceStrava,
		ExternalID:      externalID,
	})
	return importStored, err
}
