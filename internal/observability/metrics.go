// Package observability registers Prometheus metrics for the fittrack service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"example.com/fittrack/internal/domain"
)

var (
	workoutsLoggedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "workouts",
		Name:      "logged_total",
		Help:      "Number of workouts persisted, labeled by category.",
	}, []string{"category"})

	workoutsDeletedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "workouts",
		Name:      "deleted_total",
		Help:      "Number of workouts deleted.",
	})

	workoutPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "workouts",
		Name:      "last_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout persisted to PostgreSQL.",
	})
)

func init() {
	prometheus.MustRegister(workoutsLoggedCounter, workoutsDeletedCounter, workoutPersistGauge)
}

// RecordWorkoutLogged bumps the per-category counter and the persistence watermark.
func RecordWorkoutLogged(category domain.Category, ts time.Time) {
	workoutsLoggedCounter.WithLabelValues(string(category)).Inc()
	if !ts.IsZero() {
		workoutPersistGauge.Set(float64(ts.Unix()))
	}
}

// RecordWorkoutDeleted bumps the deletion counter.
func RecordWorkoutDeleted() {
	workoutsDeletedCounter.Inc()
}
