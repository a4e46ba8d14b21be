package strava

import (
	"math"
	"time"
)

// Activity is the subset of a Strava activity the monitor uses. The list
// endpoint omits perceived_exertion; it is only present on GET /activities/{id}.
type Activity struct {
	ID                int64     `json:"id"`
	Athlete           Athlete   `json:"athlete"`
	Name              string    `json:"name"`
	SportType         string    `json:"sport_type"`
	StartDate         time.Time `json:"start_date"`
	MovingTime        int       `json:"moving_time"`  // seconds
	ElapsedTime       int       `json:"elapsed_time"` // seconds
	PerceivedExertion *float64  `json:"perceived_exertion"`
	HasHeartrate      bool      `json:"has_heartrate"`
	AverageHeartrate  float64   `json:"average_heartrate"`
}

// Athlete represents a Strava athlete (minimal info in activity response)
type Athlete struct {
	ID int64 `json:"id"`
}

// DurationMinutes is the moving time in minutes, falling back to elapsed
// time for manual entries that have no moving time
func (a *Activity) DurationMinutes() float64 {
	secs := a.MovingTime
	if secs == 0 {
		secs = a.ElapsedTime
	}
	return float64(secs) / 60
}

// SessionRPE returns the athlete's perceived exertion on the 0-10 scale,
// or false if they never rated the activity
func (a *Activity) SessionRPE() (int, bool) {
	if a.PerceivedExertion == nil {
		return 0, false
	}
	rpe := int(math.Round(*a.PerceivedExertion))
	if rpe < 0 || rpe > 10 {
		return 0, false
	}
	return rpe, true
}
