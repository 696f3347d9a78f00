package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registrations and the locator client.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Registration runs by kind ("create", "delete") and final state
	Registrations *prometheus.CounterVec

	// Compensating locator calls by result ("ok", "failed")
	Compensations *prometheus.CounterVec

	// Runs that left the locator and the local store disagreeing
	InconsistentStates *prometheus.CounterVec

	// Locator call latency by operation and outcome
	LocatorLatency *prometheus.HistogramVec

	// 0 = closed, 1 = open
	LocatorBreakerState prometheus.Gauge
}

// New creates a Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smp_registrations_total",
			Help: "Registration coordinator runs by kind and final state",
		}, []string{"kind", "state"}),

		Compensations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smp_registration_compensations_total",
			Help: "Compensating locator calls by result",
		}, []string{"result"}),

		InconsistentStates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smp_registration_inconsistent_states_total",
			Help: "Registration runs that left the locator and the local store inconsistent",
		}, []string{"kind"}),

		LocatorLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smp_locator_call_duration_seconds",
			Help:    "Duration of locator calls by operation and outcome",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation", "outcome"}),

		LocatorBreakerState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "smp_locator_circuit_breaker_state",
			Help: "Locator circuit breaker state (0=closed, 1=open)",
		}),
	}
}

func (m *Metrics) IncRegistration(kind, state string) {
	if m != nil {
		m.Registrations.WithLabelValues(kind, state).Inc()
	}
}

func (m *Metrics) IncCompensation(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Compensations.WithLabelValues(result).Inc()
}

func (m *Metrics) IncInconsistentState(kind string) {
	if m != nil {
		m.InconsistentStates.WithLabelValues(kind).Inc()
	}
}

// ObserveLocatorCall records the duration of one locator call.
func (m *Metrics) ObserveLocatorCall(operation, outcome string, d time.Duration) {
	if m != nil {
		m.LocatorLatency.WithLabelValues(operation, outcome).Observe(d.Seconds())
	}
}

func (m *Metrics) SetLocatorBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.LocatorBreakerState.Set(1)
	} else {
		m.LocatorBreakerState.Set(0)
	}
}
