package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTP("POST", "/analyze", 200, 150*time.Millisecond)
	m.ObserveHTTP("POST", "/analyze", 200, 50*time.Millisecond)
	m.ObserveHTTP("GET", "/agents", 401, time.Millisecond)
	m.IncAnalyze("success", "done")
	m.IncAnalyze("failed", "fetching")
	m.ObserveStage("fetching", time.Second)
	m.IncAuthFailure("token_expired")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/analyze", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/agents", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalyzeTotal.WithLabelValues("success", "done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalyzeTotal.WithLabelValues("failed", "fetching")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailuresTotal.WithLabelValues("token_expired")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.AnalyzeStageDuration))

	n, err := testutil.GatherAndCount(reg,
		"pagescout_http_requests_total",
		"pagescout_http_request_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", 200, time.Second)
		m.ObserveStage("fetching", time.Second)
		m.IncAnalyze("success", "done")
		m.IncAuthFailure("token_missing")
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
