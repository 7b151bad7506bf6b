package progress

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/testutils/memstore"
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
	"github.com/m04kA/SMC-PostBookingService/pkg/metrics"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func TestExporter_RunOnce(t *testing.T) {
	store := memstore.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	startedAt := start.Add(10 * time.Minute)

	running := store.SeedBooking(domain.Booking{
		PostID: 7, ClientID: 1, Status: domain.StatusInProgress,
		StartAt: start, DurationMinutes: 60, InProgressStartedAt: &startedAt,
	})
	// без записанного начала используется start_at
	fallback := store.SeedBooking(domain.Booking{
		PostID: 8, ClientID: 1, Status: domain.StatusInProgress,
		StartAt: start, DurationMinutes: 40,
	})
	store.SeedBooking(domain.Booking{
		PostID: 7, ClientID: 1, Status: domain.StatusConfirmed,
		StartAt: start.Add(2 * time.Hour), DurationMinutes: 30,
	})

	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	e := NewExporter(store.Bookings(), m, logger.Nop())
	e.timeProvider = fixedTime{t: start.Add(40 * time.Minute)}

	count, err := e.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingsInProgress))
	assert.InDelta(t, 0.5, testutil.ToFloat64(m.BookingProgress.WithLabelValues("7", itoa(running.ID))), 1e-9)
	assert.Equal(t, float64(30), testutil.ToFloat64(m.BookingRemaining.WithLabelValues("7", itoa(running.ID))))
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.BookingProgress.WithLabelValues("8", itoa(fallback.ID))), 1e-9)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.BookingRemaining.WithLabelValues("8", itoa(fallback.ID))))
	assert.Equal(t, 2, testutil.CollectAndCount(m.BookingProgress))
}

func TestExporter_ResetsFinishedBookings(t *testing.T) {
	store := memstore.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	b := store.SeedBooking(domain.Booking{
		PostID: 7, ClientID: 1, Status: domain.StatusInProgress,
		StartAt: start, DurationMinutes: 60,
	})

	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	e := NewExporter(store.Bookings(), m, logger.Nop())
	e.timeProvider = fixedTime{t: start.Add(15 * time.Minute)}

	_, err := e.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(m.BookingProgress))

	_, err = store.Bookings().UpdateStatus(context.Background(), b.ID, domain.StatusCompleted, start.Add(time.Hour))
	require.NoError(t, err)

	count, err := e.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, testutil.CollectAndCount(m.BookingProgress))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.BookingsInProgress))
}

func TestExporter_RepositoryError(t *testing.T) {
	store := memstore.New()
	store.FailOn("booking.ListWithFilter", errors.New("db down"))

	e := NewExporter(store.Bookings(), (*metrics.Metrics)(nil), logger.Nop())
	_, err := e.RunOnce(context.Background())
	require.Error(t, err)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
