package service

import "athlete-monitor/internal/analysis"

const (
	// Time windows
	WorkloadLookbackDays = analysis.ChronicDays
	DefaultHistoryDays   = 7
	DefaultFitnessDays   = 90

	// Pagination limits
	RecentAssessmentsLimit = 20

	// TrainingLoadMetric is the history key for summed daily session load
	TrainingLoadMetric = "training_load"

	// Sync state keys
	LastStravaSyncKey = "last_strava_sync"

	// External ID prefixes for imported sessions
	StravaExternalPrefix = "strava:"
	FITExternalPrefix    = "fit:"
)
