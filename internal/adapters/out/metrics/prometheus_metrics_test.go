package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveRequest("listSlots", "success", 120*time.Millisecond)
	m.ObserveRequest("listSlots", "success", 80*time.Millisecond)
	m.ObserveRequest("listSlots", "network", time.Second)
	m.ObserveBooking("success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("listSlots", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("listSlots", "network")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.apiLatency))
}

func TestBookingMetricsSessions(t *testing.T) {
	m := NewBookingMetrics(prometheus.NewRegistry())

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeSessions))
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveRequest("listDoctors", "success", time.Millisecond)
	m.ObserveBooking("failure")
	m.SessionOpened()
	m.SessionClosed()
}
