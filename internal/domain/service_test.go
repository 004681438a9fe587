package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	workouts  []Workout
	created   []Workout
	deleted   []string
	deleteErr error
	listErr   error
}

func (s *stubRepo) Create(_ context.Context, workout Workout) (Workout, error) {
	workout.CreatedAt = time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
	s.created = append(s.created, workout)
	return workout, nil
}

func (s *stubRepo) Delete(_ context.Context, workoutID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, workoutID)
	return nil
}

func (s *stubRepo) ListAll(context.Context) ([]Workout, error) {
	return s.workouts, s.listErr
}

func (s *stubRepo) ListPage(_ context.Context, _ *Cursor, limit int) ([]Workout, *Cursor, error) {
	if limit > len(s.workouts) {
		limit = len(s.workouts)
	}
	return s.workouts[:limit], nil, s.listErr
}

func TestLogWorkoutAssignsID(t *testing.T) {
	repo := &stubRepo{}
	service := NewService(repo)

	workout, err := service.LogWorkout(context.Background(), WorkoutInput{
		Date:        time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		Category:    CategoryRunning,
		SubType:     "Easy Run",
		DurationMin: 30,
		DistanceKM:  5,
		RPE:         5,
	})
	require.NoError(t, err)

	require.NotEmpty(t, workout.ID)
	require.False(t, workout.CreatedAt.IsZero(), "created_at comes back from the store")
	require.Len(t, repo.created, 1)
	require.Equal(t, workout.ID, repo.created[0].ID)
}

func TestLogWorkoutRejectsUnknownCategoryBeforePersisting(t *testing.T) {
	repo := &stubRepo{}
	service := NewService(repo)

	_, err := service.LogWorkout(context.Background(), WorkoutInput{
		Date:        time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		Category:    Category("Rowing"),
		DurationMin: 30,
		RPE:         5,
	})
	require.ErrorIs(t, err, ErrInvalidCategory)
	require.Empty(t, repo.created)
}

func TestDeleteWorkoutPropagatesNotFound(t *testing.T) {
	repo := &stubRepo{deleteErr: ErrWorkoutNotFound}
	service := NewService(repo)

	err := service.DeleteWorkout(context.Background(), "missing")
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestGetDashboardUsesInjectedClock(t *testing.T) {
	repo := &stubRepo{workouts: []Workout{
		{Date: date(2024, time.January, 8), Category: CategoryRunning, DurationMin: 30, DistanceKM: 5},
		{Date: date(2024, time.January, 15), Category: CategoryRunning, DurationMin: 40, DistanceKM: 5},
	}}
	service := NewService(repo).WithClock(func() time.Time {
		return date(2024, time.January, 20)
	})

	dashboard, err := service.GetDashboard(context.Background(), CategoryRunning)
	require.NoError(t, err)

	require.Equal(t, 2, dashboard.Summary.TotalCount)
	require.Equal(t, 40, dashboard.Summary.ThisWeekDurationMin)
	require.Equal(t, map[Category]int{CategoryRunning: 70}, dashboard.Summary.CategoryBreakdown)
	require.Equal(t, []WeekBucket{
		{WeekStart: date(2024, time.January, 8), DurationMin: 30},
		{WeekStart: date(2024, time.January, 15), DurationMin: 40},
	}, dashboard.WeeklySeries)
}

func TestGetDashboardRejectsUnknownFilter(t *testing.T) {
	service := NewService(&stubRepo{})

	_, err := service.GetDashboard(context.Background(), Category("Rowing"))
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestGetDashboardPropagatesRepositoryErrors(t *testing.T) {
	repoErr := errors.New("connection reset")
	service := NewService(&stubRepo{listErr: repoErr})

	_, err := service.GetDashboard(context.Background(), "")
	require.ErrorIs(t, err, repoErr)
}
