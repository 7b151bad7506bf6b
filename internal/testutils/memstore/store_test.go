package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/notification"
)

func TestBookingRepo_Create_ForeignKeys(t *testing.T) {
	store := New()
	client := store.SeedClient(domain.Client{DeviceID: "dev-1"})
	service := store.SeedService(domain.Service{Name: "Мойка", DurationMinutes: 30, IsActive: true})
	post := store.SeedPost(domain.Post{Name: "Пост 1", IsEnabled: true, WorkStart: "08:00", WorkEnd: "20:00", IntervalMinutes: 30})
	start := time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)

	booking := func(clientID, serviceID, postID int64) *domain.Booking {
		return &domain.Booking{
			ClientID: clientID, ServiceID: serviceID, PostID: postID,
			StartAt: start, EndAt: start.Add(30 * time.Minute), DurationMinutes: 30, Status: domain.StatusPending,
		}
	}

	tests := []struct {
		name string
		b    *domain.Booking
	}{
		{"unknown client", booking(client.ID+100, service.ID, post.ID)},
		{"unknown service", booking(client.ID, service.ID+100, post.ID)},
		{"unknown post", booking(client.ID, service.ID, post.ID+100)},
		{"zero client", booking(0, service.ID, post.ID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Bookings().Create(context.Background(), tt.b)
			assert.ErrorIs(t, err, ErrForeignKey)
			assert.ErrorIs(t, err, bookingRepo.ErrExecQuery)
		})
	}
	assert.Empty(t, store.AllBookings())

	_, err := store.Bookings().Create(context.Background(), booking(client.ID, service.ID, post.ID))
	require.NoError(t, err)
	assert.Len(t, store.AllBookings(), 1)
}

func TestReassignClient_RejectsUnknownTarget(t *testing.T) {
	store := New()
	from := store.SeedClient(domain.Client{DeviceID: "dev-1"})
	b := store.SeedBooking(domain.Booking{ClientID: from.ID, ServiceID: 1, PostID: 1, DurationMinutes: 30})
	n := store.SeedNotification(domain.Notification{ClientID: from.ID, Body: "Привет", Kind: domain.NotificationNews})
	ctx := context.Background()

	_, err := store.Bookings().ReassignClient(ctx, from.ID, 999)
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.ErrorIs(t, err, bookingRepo.ErrExecQuery)

	_, err = store.Notifications().ReassignClient(ctx, from.ID, 999)
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.ErrorIs(t, err, notificationRepo.ErrExecQuery)

	got, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, from.ID, got.ClientID)
	assert.Equal(t, from.ID, store.AllNotifications()[0].ClientID)
	assert.Equal(t, n.ID, store.AllNotifications()[0].ID)
}

func TestNotificationRepo_Create_UnknownClient(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.Notifications().Create(ctx, &domain.Notification{ClientID: 5, Body: "x", Kind: domain.NotificationNews})
	assert.ErrorIs(t, err, ErrForeignKey)

	c := store.SeedClient(domain.Client{DeviceID: "dev-1"})
	_, err = store.Notifications().CreateMany(ctx, &domain.Notification{Body: "x", Kind: domain.NotificationNews}, []int64{c.ID, c.ID + 1})
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.Empty(t, store.AllNotifications())
}
