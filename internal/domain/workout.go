// Package domain holds the workout model and the pure derivation and
// aggregation logic for the fittrack service.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCategory is returned when a workout names a category outside the known set.
	ErrInvalidCategory = errors.New("unknown workout category")
	// ErrWorkoutNotFound is returned when a workout cannot be located.
	ErrWorkoutNotFound = errors.New("workout not found")
)

// Category enumerates the supported workout categories.
type Category string

const (
	CategoryRunning    Category = "Running"
	CategoryCycling    Category = "Cycling"
	CategorySwimming   Category = "Swimming"
	CategoryGym        Category = "Gym"
	CategoryStretching Category = "Stretching"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryRunning, CategoryCycling, CategorySwimming, CategoryGym, CategoryStretching}
}

// ParseCategory validates a raw category string against the closed set.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case CategoryRunning, CategoryCycling, CategorySwimming, CategoryGym, CategoryStretching:
		return c, nil
	}
	return "", ErrInvalidCategory
}

// TracksDistance reports whether workouts in this category carry a distance.
func (c Category) TracksDistance() bool {
	switch c {
	case CategoryRunning, CategoryCycling, CategorySwimming:
		return true
	}
	return false
}

const (
	// SubTypeNormal is the sub-type applied when a category has no dedicated session types.
	SubTypeNormal = "Normal"
	// SubTypeWorkout marks a structured interval session for Running and Cycling.
	SubTypeWorkout = "Workout"
)

// IsIntervalSubType reports whether the sub-type carries an interval structure breakdown.
func IsIntervalSubType(category Category, subType string) bool {
	switch category {
	case CategoryRunning, CategoryCycling:
		return subType == SubTypeWorkout
	}
	return false
}

// Workout is the canonical record persisted to PostgreSQL. Records are
// create-only: editing is delete-and-recreate, keyed by ID.
type Workout struct {
	ID          string
	Date        time.Time
	Category    Category
	SubType     string
	DurationMin int
	DistanceKM  float64
	Pace        string
	Structure   string
	RPE         int
	Notes       string
	CreatedAt   time.Time
}
