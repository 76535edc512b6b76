package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the notification module.
type Metrics struct {
	EventsReceived   *prometheus.CounterVec
	EventsDispatched *prometheus.CounterVec
	EventsDropped    prometheus.Counter
	DispatchFailures *prometheus.CounterVec
	DispatchDuration prometheus.Histogram
}

// New creates a Metrics instance with all notification module metrics
// registered on the default registry.
func New() *Metrics {
	return &Metrics{
		EventsReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idrelay_events_received_total",
			Help: "Total number of inbound provider events received",
		}, []string{"data_center"}),
		EventsDispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idrelay_events_dispatched_total",
			Help: "Total number of notification payloads handed to the publisher",
		}, []string{"kind"}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "idrelay_events_dropped_total",
			Help: "Total number of events dropped as unrecognized",
		}),
		DispatchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idrelay_dispatch_failures_total",
			Help: "Total number of failed publisher handoffs",
		}, []string{"reason"}),
		DispatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "idrelay_dispatch_duration_seconds",
			Help:    "Duration of classify-build-publish processing",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementReceived records an inbound event for a data center.
func (m *Metrics) IncrementReceived(dataCenter string) {
	m.EventsReceived.WithLabelValues(dataCenter).Inc()
}

// IncrementDispatched records a successful publisher handoff.
func (m *Metrics) IncrementDispatched(kind string) {
	m.EventsDispatched.WithLabelValues(kind).Inc()
}

// IncrementDropped records an unrecognized event drop.
func (m *Metrics) IncrementDropped() {
	m.EventsDropped.Inc()
}

// IncrementDispatchFailure records a failed publisher handoff by reason.
func (m *Metrics) IncrementDispatchFailure(reason string) {
	m.DispatchFailures.WithLabelValues(reason).Inc()
}

// ObserveDispatch records the duration of one pipeline pass.
// Call with time.Now() captured at the start of processing.
func (m *Metrics) ObserveDispatch(start time.Time) {
	m.DispatchDuration.Observe(time.Since(start).Seconds())
}
