package update_client_profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
	"github.com/m04kA/SMC-PostBookingService/pkg/metrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/ptr"
	"github.com/m04kA/SMC-PostBookingService/pkg/txmanager"
)

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

type fixture struct {
	store   *memstore.Store
	metrics *metrics.Metrics
	uc      *UseCase
	a, b    *domain.Client
}

// newFixture создает клиента A (120 баллов, 2 записи) и клиента B
// с подтвержденным номером (80 баллов, 2 записи, 1 уведомление)
func newFixture() *fixture {
	store := memstore.New()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")

	a := store.SeedClient(domain.Client{DeviceID: "device-a", LoyaltyPoints: 120})
	b := store.SeedClient(domain.Client{
		DeviceID:      "device-b",
		Phone:         ptr.Ptr("+7 916 123-45-67"),
		PhoneNorm:     ptr.Ptr("79161234567"),
		LoyaltyPoints: 80,
	})

	start := time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)
	for i, owner := range []int64{a.ID, a.ID, b.ID, b.ID} {
		store.SeedBooking(domain.Booking{
			ServiceID: 1, PostID: 1, ClientID: owner,
			StartAt: start.Add(time.Duration(i) * time.Hour), DurationMinutes: 60,
		})
	}
	store.SeedNotification(domain.Notification{ClientID: b.ID, Body: "Добро пожаловать", Kind: domain.NotificationNews})

	uc := NewUseCase(store.Clients(), store.Bookings(), store.Notifications(), store.Catalog(), store.TxManager(), m, logger.Nop())
	return &fixture{store: store, metrics: m, uc: uc, a: a, b: b}
}

func TestExecute_MergeConservesPointsAndHistory(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID: f.a.ID,
		Patch:    domain.ClientPatch{Phone: ptr.Ptr("+7 (916) 123 45 67"), Name: ptr.Ptr("Анна")},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.MergedClientID)
	assert.Equal(t, f.b.ID, *resp.MergedClientID)
	assert.Equal(t, 200, resp.Client.LoyaltyPoints)
	assert.Equal(t, "Анна", *resp.Client.Name)
	assert.Equal(t, "79161234567", *resp.Client.PhoneNorm)

	clients := f.store.AllClients()
	require.Len(t, clients, 1)
	assert.Equal(t, f.a.ID, clients[0].ID)
	assert.Equal(t, 200, clients[0].LoyaltyPoints)

	for _, b := range f.store.AllBookings() {
		assert.Equal(t, f.a.ID, b.ClientID)
	}
	assert.Len(t, f.store.AllBookings(), 4)
	assert.Equal(t, f.a.ID, f.store.AllNotifications()[0].ClientID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.IdentityMerges))
}

func TestExecute_MergeMatchesNormalizedDigits(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID: f.a.ID,
		Patch:    domain.ClientPatch{Phone: ptr.Ptr("+7-916-123-45-67")},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.MergedClientID)
	assert.Equal(t, 200, resp.Client.LoyaltyPoints)
}

func TestExecute_MergeIsAtomic(t *testing.T) {
	faults := []string{
		"booking.ReassignClient",
		"notification.ReassignClient",
		"client.SetLoyaltyPoints",
		"client.Delete",
		"client.Update",
	}

	for _, op := range faults {
		t.Run(op, func(t *testing.T) {
			f := newFixture()
			clientsBefore := f.store.AllClients()
			bookingsBefore := f.store.AllBookings()
			notificationsBefore := f.store.AllNotifications()

			f.store.FailOn(op, errors.New("injected"))

			_, err := f.uc.Execute(context.Background(), &Request{
				ClientID: f.a.ID,
				Patch:    domain.ClientPatch{Phone: ptr.Ptr("+7 916 123-45-67")},
			})
			require.ErrorIs(t, err, ErrInternal)

			assert.Equal(t, clientsBefore, f.store.AllClients())
			assert.Equal(t, bookingsBefore, f.store.AllBookings())
			assert.Equal(t, notificationsBefore, f.store.AllNotifications())
			assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.IdentityMerges))
		})
	}
}

func TestExecute_SerializationFailureIsConflict(t *testing.T) {
	f := newFixture()
	f.uc.txManager = txmanager.NewTransactionManager(stubBeginner{})

	// параллельное слияние тех же записей откатывает сериализуемую транзакцию
	pgErr := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
	f.store.FailOn("booking.ReassignClient", fmt.Errorf("%w: ReassignClient - execute update: %w", bookingRepo.ErrExecQuery, pgErr))

	_, err := f.uc.Execute(context.Background(), &Request{
		ClientID: f.a.ID,
		Patch:    domain.ClientPatch{Phone: ptr.Ptr("+7 916 123-45-67")},
	})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.IdentityMerges))
}

func TestExecute_InternalErrorKeepsCause(t *testing.T) {
	f := newFixture()
	boom := errors.New("connection reset")
	f.store.FailOn("client.Update", boom)

	_, err := f.uc.Execute(context.Background(), &Request{
		ClientID: f.a.ID,
		Patch:    domain.ClientPatch{Name: ptr.Ptr("Анна")},
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, boom)
}

func TestExecute_PlaceholderPhoneDoesNotMerge(t *testing.T) {
	tests := []struct {
		name  string
		phone string
	}{
		{"device prefix", "device:device-a"},
		{"contains device id", "tel-device-a"},
		{"too few digits", "12-34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.uc.Execute(context.Background(), &Request{
				ClientID: f.a.ID,
				Patch:    domain.ClientPatch{Phone: ptr.Ptr(tt.phone)},
			})
			require.NoError(t, err)

			assert.Nil(t, resp.MergedClientID)
			assert.Equal(t, tt.phone, *resp.Client.Phone)
			assert.Nil(t, resp.Client.PhoneNorm)
			assert.Len(t, f.store.AllClients(), 2)
		})
	}
}

func TestExecute_SamePhoneOfSelfIsNoMerge(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID: f.b.ID,
		Patch:    domain.ClientPatch{Phone: ptr.Ptr("+7 916 123-45-67")},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.MergedClientID)
	assert.Equal(t, 80, resp.Client.LoyaltyPoints)
}

func TestExecute_UpdatesFieldsWithoutPhone(t *testing.T) {
	f := newFixture()
	post := f.store.SeedPost(domain.Post{Name: "Пост 1", IsEnabled: true, WorkStart: "09:00", WorkEnd: "18:00", IntervalMinutes: 30})

	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID: f.a.ID,
		Patch: domain.ClientPatch{
			Email:            ptr.Ptr("anna@example.com"),
			Telegram:         ptr.Ptr("@anna"),
			SelectedPostID:   &post.ID,
			SelectedCategory: ptr.Ptr("wash"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "anna@example.com", *resp.Client.Email)
	assert.Equal(t, "@anna", *resp.Client.Telegram)
	assert.Equal(t, post.ID, *resp.Client.SelectedPostID)
	assert.Equal(t, 120, resp.Client.LoyaltyPoints)
	assert.Equal(t, 0, f.store.Calls("client.FindByPhoneNorm"))
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"unknown client", &Request{ClientID: 999}, ErrClientNotFound},
		{"non-positive client", &Request{ClientID: 0}, ErrInvalidInput},
		{"bad email", &Request{ClientID: f.a.ID, Patch: domain.ClientPatch{Email: ptr.Ptr("not-an-email")}}, ErrInvalidInput},
		{"unknown post", &Request{ClientID: f.a.ID, Patch: domain.ClientPatch{SelectedPostID: ptr.Ptr(int64(999))}}, ErrSelectedPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
