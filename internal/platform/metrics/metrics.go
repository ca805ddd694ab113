package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the intake service.
type Metrics struct {
	RegistrationsPersisted prometheus.Counter
	RegistrationsRejected  *prometheus.CounterVec
	NotificationOutcomes   *prometheus.CounterVec
	RequestDuration        prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "supplier_intake_registrations_persisted_total",
			Help: "Total number of supplier registrations persisted",
		}),
		RegistrationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_intake_registrations_rejected_total",
			Help: "Total number of rejected submissions by reason",
		}, []string{"reason"}),
		NotificationOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_intake_notifications_total",
			Help: "Notification send outcomes by kind",
		}, []string{"kind", "outcome"}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "supplier_intake_request_duration_seconds",
			Help:    "Latency of registration submissions",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementPersisted records a successfully stored registration.
func (m *Metrics) IncrementPersisted() {
	m.RegistrationsPersisted.Inc()
}

// IncrementRejected records a rejected submission with its reason.
func (m *Metrics) IncrementRejected(reason string) {
	m.RegistrationsRejected.WithLabelValues(reason).Inc()
}

// ObserveRequestDuration records how long one submission took end to end.
func (m *Metrics) ObserveRequestDuration(d time.Duration) {
	m.RequestDuration.Observe(d.Seconds())
}

// RecordNotification records a notification send outcome.
func (m *Metrics) RecordNotification(kind string, sent bool) {
	outcome := "sent"
	if !sent {
		outcome = "failed"
	}
	m.NotificationOutcomes.WithLabelValues(kind, outcome).Inc()
}
