package metrics

import (
	"strconv"
	"time"
)

// Методы ниже безопасны для nil-ресивера: если метрики выключены в конфиге,
// в use case передается nil и вызовы просто игнорируются

func (m *Metrics) ObserveBookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) ObserveBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

func (m *Metrics) ObserveStatusTransition(status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveIdentityMerge() {
	if m == nil {
		return
	}
	m.IdentityMerges.Inc()
}

func (m *Metrics) ObserveNotificationRelayed(transport string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.NotificationsSent.WithLabelValues(transport, status).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveBookingProgress(postID, bookingID int64, fraction float64, remainingMinutes int) {
	if m == nil {
		return
	}
	post := strconv.FormatInt(postID, 10)
	booking := strconv.FormatInt(bookingID, 10)
	m.BookingProgress.WithLabelValues(post, booking).Set(fraction)
	m.BookingRemaining.WithLabelValues(post, booking).Set(float64(remainingMinutes))
}

// ResetBookingProgress очищает gauge прогресса перед новым снимком,
// чтобы завершенные бронирования не оставались в выдаче
func (m *Metrics) ResetBookingProgress(inProgress int) {
	if m == nil {
		return
	}
	m.BookingProgress.Reset()
	m.BookingRemaining.Reset()
	m.BookingsInProgress.Set(float64(inProgress))
}
