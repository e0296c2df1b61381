package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the consent service. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	ViewsMounted    *prometheus.CounterVec
	ViewsSettled    *prometheus.CounterVec
	Decisions       *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec
	CircuitOpen     *prometheus.GaugeVec
	HTTPDuration    *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ViewsMounted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentflow_views_mounted_total",
			Help: "Consent views mounted, by initial status",
		}, []string{"status"}),
		ViewsSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentflow_views_settled_total",
			Help: "Client-info lookups applied to a view, by resulting status (discarded when the view was gone)",
		}, []string{"status"}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentflow_decisions_total",
			Help: "User actions on consent views, by action and outcome",
		}, []string{"action", "outcome"}),
		GatewayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consentflow_gateway_request_duration_seconds",
			Help:    "Latency of calls to the authorization service",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation", "outcome"}),
		CircuitOpen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "consentflow_gateway_circuit_open",
			Help: "1 while the circuit breaker guarding a dependency is open",
		}, []string{"dependency"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consentflow_http_request_duration_seconds",
			Help:    "Latency of inbound HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func (m *Metrics) IncViewMounted(status string) {
	if m == nil {
		return
	}
	m.ViewsMounted.WithLabelValues(status).Inc()
}

func (m *Metrics) IncViewSettled(status string) {
	if m == nil {
		return
	}
	m.ViewsSettled.WithLabelValues(status).Inc()
}

func (m *Metrics) IncDecision(action, outcome string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ObserveGateway(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.GatewayDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

func (m *Metrics) SetCircuitOpen(dependency string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.CircuitOpen.WithLabelValues(dependency).Set(v)
}

func (m *Metrics) ObserveHTTP(route, method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
}
