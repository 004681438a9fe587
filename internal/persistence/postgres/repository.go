// Package postgres provides pgx-backed persistence for workouts and outbox events.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/events"
	"example.com/fittrack/internal/observability"
)

const workoutColumns = `workout_id, workout_date, category, sub_type, duration_min, distance_km, pace, structure, rpe, notes, created_at`

// Repository stores workouts and records outbox events alongside each write.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create persists the workout and its outbox event inside a single
// transaction. The database assigns created_at; the stored record is
// returned with the server timestamp filled in.
func (r *Repository) Create(ctx context.Context, workout domain.Workout) (domain.Workout, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Workout{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertWorkout = `INSERT INTO workouts (workout_id, workout_date, category, sub_type, duration_min, distance_km, pace, structure, rpe, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at`

	err = tx.QueryRow(ctx, insertWorkout,
		workout.ID,
		workout.Date,
		workout.Category,
		workout.SubType,
		workout.DurationMin,
		workout.DistanceKM,
		workout.Pace,
		workout.Structure,
		workout.RPE,
		workout.Notes,
	).Scan(&workout.CreatedAt)
	if err != nil {
		return domain.Workout{}, err
	}

	if err = insertOutbox(ctx, tx, workout.ID, "workout.logged", events.WorkoutLogged{
		WorkoutID:   workout.ID,
		Date:        workout.Date.Format("2006-01-02"),
		Category:    string(workout.Category),
		SubType:     workout.SubType,
		DurationMin: workout.DurationMin,
		DistanceKM:  workout.DistanceKM,
		Pace:        workout.Pace,
		RPE:         workout.RPE,
		LoggedAt:    workout.CreatedAt,
	}); err != nil {
		return domain.Workout{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.Workout{}, err
	}
	observability.RecordWorkoutLogged(workout.Category, workout.CreatedAt)
	return workout, nil
}

// Delete removes a workout by ID and records the deletion event in the same
// transaction. Missing rows map to domain.ErrWorkoutNotFound.
func (r *Repository) Delete(ctx context.Context, workoutID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	var deletedID string
	row := tx.QueryRow(ctx, `DELETE FROM workouts WHERE workout_id=$1 RETURNING workout_id`, workoutID)
	if err = row.Scan(&deletedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrWorkoutNotFound
		}
		return err
	}

	if err = insertOutbox(ctx, tx, workoutID, "workout.deleted", events.WorkoutDeleted{
		WorkoutID:  workoutID,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordWorkoutDeleted()
	return nil
}

// ListAll streams every workout for aggregation, oldest date first.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts ORDER BY workout_date, created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkouts(rows, 0)
}

// ListPage returns a history page ordered by workout date descending with
// created_at and workout_id as tie-breaks, using keyset pagination.
func (r *Repository) ListPage(ctx context.Context, cursor *domain.Cursor, limit int) ([]domain.Workout, *domain.Cursor, error) {
	args := []interface{}{limit}
	query := `SELECT ` + workoutColumns + ` FROM workouts`

	if cursor != nil {
		query += ` WHERE (workout_date, created_at, workout_id) < ($2, $3, $4)`
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}

	query += ` ORDER BY workout_date DESC, created_at DESC, workout_id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	results, err := scanWorkouts(rows, limit)
	if err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(results) == limit {
		last := results[len(results)-1]
		next = &domain.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return results, next, nil
}

func scanWorkouts(rows pgx.Rows, capacity int) ([]domain.Workout, error) {
	results := make([]domain.Workout, 0, capacity)
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.Date, &w.Category, &w.SubType, &w.DurationMin, &w.DistanceKM, &w.Pace, &w.Structure, &w.RPE, &w.Notes, &w.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func insertOutbox(ctx context.Context, tx pgx.Tx, workoutID, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta, ok := eventCatalog[eventType]
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload)
        VALUES ($1,$2,$3,$4,$5,$6)`

	_, err = tx.Exec(ctx, stmt, "workout", workoutID, eventType, meta.Topic, workoutID, body)
	return err
}

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic string
}

var eventCatalog = map[string]EventMetadata{
	"workout.logged":  {Topic: "workout_events"},
	"workout.deleted": {Topic: "workout_events"},
}
