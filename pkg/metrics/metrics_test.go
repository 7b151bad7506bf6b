package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewWithRegisterer_IsolatedRegistry(t *testing.T) {
	m1 := NewWithRegisterer(prometheus.NewRegistry(), "booking")
	m2 := NewWithRegisterer(prometheus.NewRegistry(), "booking")

	m1.ObserveBookingCreated()
	m1.ObserveBookingCreated()
	m2.ObserveBookingConflict()

	assert.Equal(t, float64(2), testutil.ToFloat64(m1.BookingsCreated))
	assert.Equal(t, float64(0), testutil.ToFloat64(m2.BookingsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m2.BookingConflicts))
}

func TestRecorder_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBookingCreated()
		m.ObserveBookingConflict()
		m.ObserveStatusTransition("confirmed")
		m.ObserveIdentityMerge()
		m.ObserveNotificationRelayed("amqp", true)
	})
}

func TestObserveStatusTransition_ByLabel(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "booking")

	m.ObserveStatusTransition("confirmed")
	m.ObserveStatusTransition("confirmed")
	m.ObserveStatusTransition("completed")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.StatusTransitions.WithLabelValues("confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusTransitions.WithLabelValues("completed")))
}
