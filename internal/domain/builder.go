package domain

import "time"

// WorkoutInput carries the already type-coerced form fields used to assemble
// a workout. Parsing raw text happens at the API boundary, not here.
type WorkoutInput struct {
	Date        time.Time
	Category    Category
	SubType     string
	DurationMin int
	DistanceKM  float64
	RPE         int
	Notes       string
	Structure   string
	ManualPace  string
}

// BuildWorkout assembles a normalized Workout from form input. ID and
// CreatedAt stay unset; they are assigned at persistence time.
//
// Distance is dropped for categories that do not track it, and Structure is
// kept only for interval sub-types so stray breakdown text never leaks into
// steady-state records. A manual pace override only applies to Running.
func BuildWorkout(in WorkoutInput) (Workout, error) {
	category, err := ParseCategory(string(in.Category))
	if err != nil {
		return Workout{}, err
	}

	subType := in.SubType
	if subType == "" {
		subType = SubTypeNormal
	}

	distance := in.DistanceKM
	if !category.TracksDistance() {
		distance = 0
	}

	structure := ""
	if IsIntervalSubType(category, subType) {
		structure = in.Structure
	}

	manualPace := ""
	if category == CategoryRunning {
		manualPace = in.ManualPace
	}

	pace, err := DerivePace(category, distance, in.DurationMin, manualPace)
	if err != nil {
		return Workout{}, err
	}

	day := in.Date.UTC()
	return Workout{
		Date:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Category:    category,
		SubType:     subType,
		DurationMin: in.DurationMin,
		DistanceKM:  distance,
		Pace:        pace,
		Structure:   structure,
		RPE:         in.RPE,
		Notes:       in.Notes,
	}, nil
}
