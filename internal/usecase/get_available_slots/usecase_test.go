package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/testutils/memstore"
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var msk = time.FixedZone("UTC+3", 3*60*60)

func newUseCase(store *memstore.Store, now time.Time) *UseCase {
	uc := NewUseCase(store.Bookings(), store.Catalog(), msk, logger.Nop())
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func seedCatalog(store *memstore.Store, interval, duration int) (*domain.Post, *domain.Service) {
	post := store.SeedPost(domain.Post{
		Name:            "Пост 1",
		IsEnabled:       true,
		WorkStart:       "10:00",
		WorkEnd:         "12:00",
		IntervalMinutes: interval,
	})
	service := store.SeedService(domain.Service{
		Name:            "Мойка",
		Price:           1500,
		DurationMinutes: duration,
		IsActive:        true,
	})
	return post, service
}

func TestExecute_EdgeTouchingIsFree(t *testing.T) {
	store := memstore.New()
	post, service := seedCatalog(store, 1, 30)

	date := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	existingStart := time.Date(2030, 1, 15, 10, 0, 0, 0, msk)
	store.SeedBooking(domain.Booking{
		PostID: post.ID, ServiceID: service.ID, ClientID: 1,
		StartAt: existingStart, EndAt: existingStart.Add(30 * time.Minute),
		DurationMinutes: 30, Status: domain.StatusConfirmed,
	})
	cancelledStart := time.Date(2030, 1, 15, 11, 0, 0, 0, msk)
	store.SeedBooking(domain.Booking{
		PostID: post.ID, ServiceID: service.ID, ClientID: 2,
		StartAt: cancelledStart, EndAt: cancelledStart.Add(30 * time.Minute),
		DurationMinutes: 30, Status: domain.StatusCancelled,
	})

	uc := newUseCase(store, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, PostID: post.ID, Date: date})
	require.NoError(t, err)

	// 10:00..11:30 включительно с шагом в минуту
	require.Len(t, resp.Slots, 91)
	assert.Equal(t, 30, resp.DurationMinutes)

	byTime := make(map[string]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byTime[s.StartAt.In(msk).Format(domain.TimeFormat)] = s
	}

	assert.False(t, byTime["10:00"].IsAvailable)
	assert.False(t, byTime["10:29"].IsAvailable)
	assert.True(t, byTime["10:30"].IsAvailable)
	assert.True(t, byTime["11:00"].IsAvailable, "отмененное бронирование не занимает слот")
	assert.True(t, byTime["11:30"].IsAvailable)
	_, ok := byTime["11:31"]
	assert.False(t, ok, "слот не должен выходить за конец рабочего окна")
}

func TestExecute_SlotsAreOrderedAndUseBusinessOffset(t *testing.T) {
	store := memstore.New()
	post, service := seedCatalog(store, 30, 60)

	uc := newUseCase(store, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: service.ID,
		PostID:    post.ID,
		Date:      time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3) // 10:00, 10:30, 11:00
	assert.True(t, resp.Slots[0].StartAt.Equal(time.Date(2030, 1, 15, 7, 0, 0, 0, time.UTC)))
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartAt.Before(resp.Slots[i].StartAt))
	}
	assert.True(t, resp.Slots[2].EndAt.Equal(time.Date(2030, 1, 15, 12, 0, 0, 0, msk)))
}

func TestExecute_PastSlotsAreUnavailable(t *testing.T) {
	store := memstore.New()
	post, service := seedCatalog(store, 30, 30)

	now := time.Date(2030, 1, 15, 10, 45, 0, 0, msk)
	uc := newUseCase(store, now)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: service.ID,
		PostID:    post.ID,
		Date:      time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.Equal(t, !s.StartAt.Before(now), s.IsAvailable, s.StartAt.In(msk).Format(domain.TimeFormat))
	}
}

func TestExecute_Errors(t *testing.T) {
	store := memstore.New()
	post, service := seedCatalog(store, 30, 30)
	disabledPost := store.SeedPost(domain.Post{Name: "Пост 2", WorkStart: "10:00", WorkEnd: "12:00", IntervalMinutes: 30})
	inactiveService := store.SeedService(domain.Service{Name: "Химчистка", DurationMinutes: 30})
	date := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		req      *Request
		wantErr  error
		wantKind error
	}{
		{"unknown post", &Request{ServiceID: service.ID, PostID: 999, Date: date}, ErrPostNotFound, domain.ErrDisabled},
		{"disabled post", &Request{ServiceID: service.ID, PostID: disabledPost.ID, Date: date}, ErrPostDisabled, domain.ErrDisabled},
		{"unknown service", &Request{ServiceID: 999, PostID: post.ID, Date: date}, ErrServiceNotFound, domain.ErrNotFound},
		{"inactive service", &Request{ServiceID: inactiveService.ID, PostID: post.ID, Date: date}, ErrServiceInactive, domain.ErrDisabled},
		{"zero date", &Request{ServiceID: service.ID, PostID: post.ID}, ErrInvalidInput, domain.ErrValidation},
		{"non-positive post", &Request{ServiceID: service.ID, PostID: 0, Date: date}, ErrInvalidInput, domain.ErrValidation},
	}

	uc := newUseCase(store, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestExecute_RepositoryFailure(t *testing.T) {
	store := memstore.New()
	post, service := seedCatalog(store, 30, 30)
	store.FailOn("booking.GetActiveByPostInRange", errors.New("connection reset"))

	uc := newUseCase(store, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: service.ID,
		PostID:    post.ID,
		Date:      time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInternal)
}
