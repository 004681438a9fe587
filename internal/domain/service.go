package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkoutRepository captures persistence operations for workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout Workout) (Workout, error)
	Delete(ctx context.Context, workoutID string) error
	ListAll(ctx context.Context) ([]Workout, error)
	ListPage(ctx context.Context, cursor *Cursor, limit int) ([]Workout, *Cursor, error)
}

// Cursor models the keyset pagination token for history listings.
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// Dashboard bundles the aggregates served to the dashboard view.
type Dashboard struct {
	Summary      Summary
	WeeklySeries []WeekBucket
	Filter       Category
}

// Service orchestrates workout workflows over a repository. Core derivation
// and aggregation stay pure; the service only wires persistence and the clock.
type Service struct {
	repo WorkoutRepository
	now  func() time.Time
}

// NewService constructs a Service reading the wall clock.
func NewService(repo WorkoutRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the reference clock used for aggregation.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// LogWorkout builds and persists a new workout record. Creation is the only
// write path: records are never updated. The store assigns created_at; the
// returned workout carries both the generated ID and the server timestamp.
func (s *Service) LogWorkout(ctx context.Context, input WorkoutInput) (*Workout, error) {
	workout, err := BuildWorkout(input)
	if err != nil {
		return nil, err
	}
	workout.ID = uuid.NewString()

	created, err := s.repo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteWorkout removes a workout by ID, the sole deletion key.
func (s *Service) DeleteWorkout(ctx context.Context, workoutID string) error {
	return s.repo.Delete(ctx, workoutID)
}

// ListWorkouts fetches history pages ordered by workout date descending with
// created_at as the tie-break.
func (s *Service) ListWorkouts(ctx context.Context, cursor *Cursor, limit int) ([]Workout, *Cursor, error) {
	return s.repo.ListPage(ctx, cursor, limit)
}

// GetDashboard aggregates every stored workout into dashboard totals and the
// trailing weekly series, optionally filtered to one category.
func (s *Service) GetDashboard(ctx context.Context, filter Category) (*Dashboard, error) {
	if filter != "" {
		parsed, err := ParseCategory(string(filter))
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	workouts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return &Dashboard{
		Summary:      Summarize(workouts, now),
		WeeklySeries: WeeklySeries(workouts, filter, now),
		Filter:       filter,
	}, nil
}
