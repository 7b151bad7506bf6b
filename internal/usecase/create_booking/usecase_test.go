package create_booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PostBookingService/internal/testutils/memstore"
	"github.com/m04kA/SMC-PostBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/keylock"
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
	"github.com/m04kA/SMC-PostBookingService/pkg/metrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/ptr"
	"github.com/m04kA/SMC-PostBookingService/pkg/txmanager"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// stubTx транзакция без соединения: фиксация всегда успешна
type stubTx struct{}

func (stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubBeginner struct{}

func (stubBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return stubTx{}, nil
}

var (
	msk = time.FixedZone("UTC+3", 3*60*60)
	now = time.Date(2030, 1, 1, 9, 0, 0, 0, msk)
)

type fixture struct {
	store   *memstore.Store
	metrics *metrics.Metrics
	uc      *UseCase
	client  *domain.Client
	post    *domain.Post
	service *domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")

	uc := NewUseCase(store.Bookings(), store.Catalog(), store.Clients(), store.TxManager(), keylock.New(), m, msk, logger.Nop())
	uc.timeProvider = fixedTime{t: now}

	return &fixture{
		store:   store,
		metrics: m,
		uc:      uc,
		client:  store.SeedClient(domain.Client{DeviceID: "device-7"}),
		post: store.SeedPost(domain.Post{
			Name:            "Пост 1",
			IsEnabled:       true,
			WorkStart:       "09:00",
			WorkEnd:         "18:00",
			IntervalMinutes: 30,
		}),
		service: store.SeedService(domain.Service{
			Name:            "Комплексная мойка",
			Price:           2500,
			DurationMinutes: 60,
			IsActive:        true,
		}),
	}
}

func (f *fixture) request(start time.Time) *Request {
	return &Request{ClientID: f.client.ID, ServiceID: f.service.ID, PostID: f.post.ID, StartAt: start}
}

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 15, hour, minute, 0, 0, msk)
}

func TestExecute_CreatesPendingBookingWithSnapshot(t *testing.T) {
	f := newFixture(t)

	req := f.request(at(10, 0))
	req.Notes = ptr.Ptr("без воска")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.True(t, resp.EndAt.Equal(at(11, 0)))
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Комплексная мойка", resp.ServiceName)
	assert.Equal(t, 2500.0, resp.ServicePrice)
	assert.Equal(t, "без воска", *resp.Notes)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingsCreated))
}

func TestExecute_SnapshotSurvivesCatalogChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, f.request(at(10, 0)))
	require.NoError(t, err)

	changed := *f.service
	changed.Name = "Мойка премиум"
	changed.Price = 4000
	changed.DurationMinutes = 90
	_, err = f.store.Catalog().UpdateService(ctx, &changed)
	require.NoError(t, err)

	stored, err := f.store.Bookings().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Комплексная мойка", stored.ServiceName)
	assert.Equal(t, 2500.0, stored.ServicePrice)
	assert.Equal(t, 60, stored.DurationMinutes)
	assert.True(t, stored.EndAt.Equal(at(11, 0)))
}

func TestExecute_OverlapIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, f.request(at(10, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.request(at(10, 30)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// касание границей допустимо
	_, err = f.uc.Execute(ctx, f.request(at(11, 0)))
	assert.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingConflicts))
	assert.Len(t, f.store.AllBookings(), 2)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	f.store.SeedBooking(domain.Booking{
		PostID: f.post.ID, ServiceID: f.service.ID, ClientID: 1,
		StartAt: at(10, 0), DurationMinutes: 60, Status: domain.StatusCancelled,
	})

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentCreatesNeverDoubleBook(t *testing.T) {
	f := newFixture(t)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	clients := make([]int64, workers)
	for i := range clients {
		clients[i] = f.store.SeedClient(domain.Client{DeviceID: fmt.Sprintf("device-%d", i)}).ID
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := f.request(at(10, i%3*10))
			req.ClientID = clients[i]
			_, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	bookings := f.store.AllBookings()
	for i := range bookings {
		for j := i + 1; j < len(bookings); j++ {
			assert.False(t, domain.Overlaps(bookings[i].StartAt, bookings[i].EndAt, bookings[j].StartAt, bookings[j].EndAt))
		}
	}
}

func TestExecute_RevalidatesCatalogAtCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// услуга была активна при просмотре слотов, но выключена до создания
	disabled := *f.service
	disabled.IsActive = false
	_, err := f.store.Catalog().UpdateService(ctx, &disabled)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrServiceInactive)
	assert.ErrorIs(t, err, domain.ErrDisabled)

	post := *f.post
	post.IsEnabled = false
	_, err = f.store.Catalog().UpdatePost(ctx, &post)
	require.NoError(t, err)
	disabled.IsActive = true
	_, err = f.store.Catalog().UpdateService(ctx, &disabled)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrPostDisabled)
	assert.ErrorIs(t, err, domain.ErrDisabled)

	assert.Empty(t, f.store.AllBookings())
}

func TestExecute_ConstraintViolationAtInsertIsConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"exclusion constraint", bookingRepo.ErrSlotTaken},
		{"serialization failure", txmanager.ErrConcurrentUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.FailOn("booking.Create", fmt.Errorf("wrapped: %w", tt.err))

			_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestExecute_SerializationFailureFromPostgresIsConflict(t *testing.T) {
	f := newFixture(t)
	f.uc.txManager = txmanager.NewTransactionManager(stubBeginner{})

	// так ошибку возвращает storage/booking при откате сериализуемой транзакции
	pgErr := &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"}
	f.store.FailOn("booking.Create", fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, pgErr))

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, txmanager.ErrConcurrentUpdate)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingConflicts))
}

func TestExecute_InternalErrorKeepsCause(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")
	f.store.FailOn("booking.GetActiveByPostInRange", boom)

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, boom)
}

func TestExecute_UnknownClientIsNotFound(t *testing.T) {
	f := newFixture(t)

	// клиент удален слиянием профилей, токен при этом еще действует
	req := f.request(at(10, 0))
	req.ClientID = f.client.ID + 1000

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.AllBookings())
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	longNotes := make([]rune, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'я'
	}

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"non-positive client", func(r *Request) { r.ClientID = 0 }, ErrInvalidInput},
		{"non-positive service", func(r *Request) { r.ServiceID = -1 }, ErrInvalidInput},
		{"non-positive post", func(r *Request) { r.PostID = 0 }, ErrInvalidInput},
		{"zero start", func(r *Request) { r.StartAt = time.Time{} }, ErrInvalidInput},
		{"notes too long", func(r *Request) { r.Notes = ptr.Ptr(string(longNotes)) }, ErrInvalidInput},
		{"start in the past", func(r *Request) { r.StartAt = now.Add(-time.Minute) }, ErrStartInPast},
		{"before opening", func(r *Request) { r.StartAt = at(8, 30) }, ErrOutsideWorkingHours},
		{"ends after closing", func(r *Request) { r.StartAt = at(17, 30) }, ErrOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(at(10, 0))
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, f.store.AllBookings())
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	req := f.request(at(10, 0))
	req.ServiceID = 999
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = f.request(at(10, 0))
	req.PostID = 999
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
