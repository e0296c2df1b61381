package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncViewMounted("loading")
	m.IncViewMounted("loading")
	m.IncViewSettled("discarded")
	m.IncDecision("approve", "redirected")
	m.SetCircuitOpen("authorization_service", true)
	m.ObserveGateway("client_info", "ok", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ViewsMounted.WithLabelValues("loading")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewsSettled.WithLabelValues("discarded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("approve", "redirected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CircuitOpen.WithLabelValues("authorization_service")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.GatewayDuration))

	m.SetCircuitOpen("authorization_service", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CircuitOpen.WithLabelValues("authorization_service")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncViewMounted("error")
		m.IncViewSettled("ready")
		m.IncDecision("cancel", "home")
		m.ObserveGateway("authorize", "error", time.Second)
		m.SetCircuitOpen("authorize", true)
		m.ObserveHTTP("/authorize", "GET", "200", time.Millisecond)
	})
}
