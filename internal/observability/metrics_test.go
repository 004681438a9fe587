package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
)

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestRecordWorkoutLogged(t *testing.T) {
	ts := time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
	RecordWorkoutLogged(domain.CategoryRunning, ts)

	counters := gatherFamily(t, "fittrack_workouts_logged_total")
	require.NotNil(t, counters)

	var running *dto.Metric
	for _, metric := range counters.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "category" && label.GetValue() == string(domain.CategoryRunning) {
				running = metric
			}
		}
	}
	require.NotNil(t, running)
	require.GreaterOrEqual(t, running.GetCounter().GetValue(), 1.0)

	gauge := gatherFamily(t, "fittrack_workouts_last_persisted_timestamp_seconds")
	require.NotNil(t, gauge)
	require.Equal(t, float64(ts.Unix()), gauge.GetMetric()[0].GetGauge().GetValue())
}

func TestRecordWorkoutLoggedIgnoresZeroTimestamp(t *testing.T) {
	before := gatherFamily(t, "fittrack_workouts_last_persisted_timestamp_seconds")
	require.NotNil(t, before)
	value := before.GetMetric()[0].GetGauge().GetValue()

	RecordWorkoutLogged(domain.CategoryGym, time.Time{})

	after := gatherFamily(t, "fittrack_workouts_last_persisted_timestamp_seconds")
	require.Equal(t, value, after.GetMetric()[0].GetGauge().GetValue())
}

func TestRecordWorkoutDeleted(t *testing.T) {
	RecordWorkoutDeleted()

	family := gatherFamily(t, "fittrack_workouts_deleted_total")
	require.NotNil(t, family)
	require.GreaterOrEqual(t, family.GetMetric()[0].GetCounter().GetValue(), 1.0)
}
