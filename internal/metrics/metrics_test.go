package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New("shiftmate")
	registry := prometheus.NewRegistry()
	require.NoError(t, m.Register(registry))
	require.NoError(t, m.Register(registry), "registering twice is tolerated")

	m.ObserveRequest("GET", "200", 15*time.Millisecond)
	m.ObserveRequest("GET", "UNAUTHORIZED", time.Millisecond)
	m.ObserveRefresh(RefreshSuccess)
	m.ObserveRefresh(RefreshShared)
	m.ObserveRefresh(RefreshShared)
	m.ObserveAuthExpired()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RefreshesTotal.WithLabelValues(RefreshShared)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthExpiredTotal))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "200", time.Millisecond)
		m.ObserveRefresh(RefreshFailure)
		m.ObserveAuthExpired()
		_ = m.Register(prometheus.NewRegistry())
	})
}

func TestMetrics_RegisterAdoptsExisting(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := New("shiftmate")
	second := New("shiftmate")
	require.NoError(t, first.Register(registry))
	require.NoError(t, second.Register(registry))

	second.ObserveAuthExpired()
	second.ObserveRefresh(RefreshFailure)
	second.ObserveRequest("POST", "200", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(first.AuthExpiredTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.RefreshesTotal.WithLabelValues(RefreshFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.RequestsTotal.WithLabelValues("POST", "200")))
	count, err := testutil.GatherAndCount(registry, "shiftmate_client_auth_expired_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
