package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsOutcome(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	require.NoError(t, metrics.Track("warmup").End(nil))
	failure := errors.New("boom")
	assert.ErrorIs(t, metrics.Track("warmup").End(failure), failure)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("warmup", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("warmup", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failures.WithLabelValues("warmup")))
}

func TestAddChartsWarmedIgnoresNonPositive(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.AddChartsWarmed("trend", 0)
	metrics.AddChartsWarmed("trend", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.charts.WithLabelValues("trend")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics
	err := errors.New("kept")
	assert.ErrorIs(t, metrics.Track("warmup").End(err), err)
	metrics.AddChartsWarmed("radar", 1)
}
