package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"reminder-engine/internal/model"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveReminders([]model.Reminder{
		{Key: model.FamilyMMR, Status: model.StatusDue},
		{Key: model.FamilyMMR, Status: model.StatusDue},
		{Key: model.FamilyTBE, Status: model.StatusMissing},
	})
	m.AddUnmatched(2)
	m.AddUnmatched(0)
	m.ObserveCompute(time.Millisecond)
	m.ObserveSource("Patient", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Reminders.WithLabelValues("MMR", "due")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reminders.WithLabelValues("TBE", "missing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.UnmatchedRecords))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ComputeLatency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveReminders([]model.Reminder{{Key: model.FamilyMMR, Status: model.StatusDue}})
		m.AddUnmatched(1)
		m.ObserveCompute(time.Second)
		m.ObserveSource("Immunization", time.Second)
	})
}
