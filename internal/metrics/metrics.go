package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"reminder-engine/internal/model"
)

// Metrics provides observability for reminder computation.
type Metrics struct {
	// Reminders produced by family and status
	Reminders *prometheus.CounterVec

	// Records no catalog family matched
	UnmatchedRecords prometheus.Counter

	// Time spent computing one patient's reminders
	ComputeLatency prometheus.Histogram

	// Remote record source latency by resource
	SourceLatency *prometheus.HistogramVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Reminders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_engine_reminders_total",
			Help: "Reminders produced by family and status",
		}, []string{"family", "status"}),

		UnmatchedRecords: f.NewCounter(prometheus.CounterOpts{
			Name: "reminder_engine_unmatched_records_total",
			Help: "Vaccination records that matched no catalog family",
		}),

		ComputeLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminder_engine_compute_duration_seconds",
			Help:    "Duration of one reminder computation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1},
		}),

		SourceLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reminder_engine_source_fetch_duration_seconds",
			Help:    "Duration of remote patient record fetches by resource",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"resource"}), // resource: "Patient", "Immunization"
	}
}

// ObserveReminders counts each reminder of one computation.
func (m *Metrics) ObserveReminders(reminders []model.Reminder) {
	if m == nil {
		return
	}
	for _, r := range reminders {
		m.Reminders.WithLabelValues(string(r.Key), string(r.Status)).Inc()
	}
}

func (m *Metrics) AddUnmatched(n int) {
	if m != nil && n > 0 {
		m.UnmatchedRecords.Add(float64(n))
	}
}

func (m *Metrics) ObserveCompute(d time.Duration) {
	if m != nil {
		m.ComputeLatency.Observe(d.Seconds())
	}
}

// ObserveSource records the duration of fetching one FHIR resource type.
func (m *Metrics) ObserveSource(resource string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(resource).Observe(d.Seconds())
	}
}
