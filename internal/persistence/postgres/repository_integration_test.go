//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/fittrack/internal/domain"
)

func TestRepositoryCreateListDelete(t *testing.T) {
	ctx := context.Background()

	pool := startPostgres(t, ctx)
	repo := NewRepository(pool)

	workout := domain.Workout{
		ID:          uuid.NewString(),
		Date:        time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		Category:    domain.CategoryRunning,
		SubType:     "Easy Run",
		DurationMin: 30,
		DistanceKM:  5,
		Pace:        "6:00 /km",
		RPE:         5,
		Notes:       "integration run",
	}

	created, err := repo.Create(ctx, workout)
	require.NoError(t, err)
	require.False(t, created.CreatedAt.IsZero(), "store assigns created_at")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, workout.ID, all[0].ID)
	require.Equal(t, domain.CategoryRunning, all[0].Category)
	require.Equal(t, workout.Date, all[0].Date)

	var outboxCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE aggregate_id=$1 AND event_type='workout.logged'`, workout.ID).Scan(&outboxCount))
	require.Equal(t, 1, outboxCount)

	require.NoError(t, repo.Delete(ctx, workout.ID))

	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE aggregate_id=$1 AND event_type='workout.deleted'`, workout.ID).Scan(&outboxCount))
	require.Equal(t, 1, outboxCount)

	require.ErrorIs(t, repo.Delete(ctx, workout.ID), domain.ErrWorkoutNotFound)
}

func TestRepositoryListPageKeysetOrdering(t *testing.T) {
	ctx := context.Background()

	pool := startPostgres(t, ctx)
	repo := NewRepository(pool)

	dates := []time.Time{
		time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		_, err := repo.Create(ctx, domain.Workout{
			ID:          uuid.NewString(),
			Date:        d,
			Category:    domain.CategoryGym,
			SubType:     domain.SubTypeNormal,
			DurationMin: 45,
			Pace:        "N/A",
			RPE:         6,
		})
		require.NoError(t, err)
	}

	page1, cursor, err := repo.ListPage(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, cursor)
	require.Equal(t, dates[2], page1[0].Date, "newest date first")

	page2, cursor, err := repo.ListPage(ctx, cursor, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	require.Nil(t, cursor)
	require.Equal(t, dates[0], page2[0].Date)
}

func startPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("fittrack"),
		postgrescontainer.WithUsername("fittrack"),
		postgrescontainer.WithPassword("fittrack"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
