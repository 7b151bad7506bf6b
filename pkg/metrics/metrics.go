package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	// Бизнес-метрики
	BookingsCreated    prometheus.Counter
	BookingConflicts   prometheus.Counter
	StatusTransitions  *prometheus.CounterVec
	IdentityMerges     prometheus.Counter
	NotificationsSent  *prometheus.CounterVec
	BookingsInProgress prometheus.Gauge
	BookingProgress    *prometheus.GaugeVec
	BookingRemaining   *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном registry (в тестах - prometheus.NewRegistry())
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings successfully created",
			ConstLabels: labels,
		}),
		BookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken",
			ConstLabels: labels,
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Applied booking status transitions by target status",
			ConstLabels: labels,
		}, []string{"status"}),
		IdentityMerges: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "client_identity_merges_total",
			Help:        "Client records merged by phone collision",
			ConstLabels: labels,
		}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_relayed_total",
			Help:        "Notifications handed to the delivery transport",
			ConstLabels: labels,
		}, []string{"transport", "status"}),
		BookingsInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bookings_in_progress",
			Help:        "Bookings currently in progress",
			ConstLabels: labels,
		}),
		BookingProgress: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "booking_progress_ratio",
			Help:        "Progress of an in-progress booking (0..1)",
			ConstLabels: labels,
		}, []string{"post_id", "booking_id"}),
		BookingRemaining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "booking_remaining_minutes",
			Help:        "Minutes remaining for an in-progress booking",
			ConstLabels: labels,
		}, []string{"post_id", "booking_id"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingConflicts,
		m.StatusTransitions,
		m.IdentityMerges,
		m.NotificationsSent,
		m.BookingsInProgress,
		m.BookingProgress,
		m.BookingRemaining,
	)

	return m
}
