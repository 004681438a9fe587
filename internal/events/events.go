// Package events defines the payloads published for workout lifecycle changes.
package events

import "time"

// WorkoutLogged is emitted when a new workout record is accepted.
type WorkoutLogged struct {
	WorkoutID   string    `json:"workout_id"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	SubType     string    `json:"sub_type"`
	DurationMin int       `json:"duration_min"`
	DistanceKM  float64   `json:"distance_km"`
	Pace        string    `json:"pace"`
	RPE         int       `json:"rpe"`
	LoggedAt    time.Time `json:"logged_at"`
}

// WorkoutDeleted is emitted when a workout record is removed. Records are
// immutable, so delete is the only mutation event besides create.
type WorkoutDeleted struct {
	WorkoutID  string    `json:"workout_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
