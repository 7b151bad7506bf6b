package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/service/notifications/models"
	"github.com/m04kA/SMC-PostBookingService/internal/testutils/memstore"
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
	"github.com/m04kA/SMC-PostBookingService/pkg/ptr"
)

func newService(store *memstore.Store) *Service {
	return NewService(store.Notifications(), store.Clients(), store.TxManager(), logger.Nop())
}

func TestListAndMarkRead(t *testing.T) {
	store := memstore.New()
	a := store.SeedClient(domain.Client{DeviceID: "a"})
	b := store.SeedClient(domain.Client{DeviceID: "b"})
	first := store.SeedNotification(domain.Notification{ClientID: a.ID, Body: "1", Kind: domain.NotificationNews})
	store.SeedNotification(domain.Notification{ClientID: a.ID, Body: "2", Kind: domain.NotificationAdmin})
	store.SeedNotification(domain.Notification{ClientID: b.ID, Body: "3", Kind: domain.NotificationNews})
	s := newService(store)
	ctx := context.Background()

	list, err := s.List(ctx, a.ID, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)
	assert.Equal(t, "2", list.Notifications[0].Body, "новые первыми")

	require.NoError(t, s.MarkRead(ctx, first.ID, a.ID))

	unread, err := s.List(ctx, a.ID, true)
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, "2", unread.Notifications[0].Body)

	err = s.MarkRead(ctx, first.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSend_Direct(t *testing.T) {
	store := memstore.New()
	a := store.SeedClient(domain.Client{DeviceID: "a"})
	s := newService(store)

	resp, err := s.Send(context.Background(), &models.SendRequest{
		ClientID: &a.ID,
		Title:    ptr.Ptr("Скидка"),
		Body:     "Для вас скидка 10%",
		Kind:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Recipients)

	all := store.AllNotifications()
	require.Len(t, all, 1)
	assert.Equal(t, a.ID, all[0].ClientID)
	assert.Equal(t, domain.NotificationAdmin, all[0].Kind)

	_, err = s.Send(context.Background(), &models.SendRequest{ClientID: ptr.Ptr(int64(999)), Body: "x", Kind: "admin"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestSend_Broadcast(t *testing.T) {
	store := memstore.New()
	for _, d := range []string{"a", "b", "c"} {
		store.SeedClient(domain.Client{DeviceID: d})
	}
	s := newService(store)

	resp, err := s.Send(context.Background(), &models.SendRequest{Body: "Открылся новый пост", Kind: "news"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Recipients)

	recipients := map[int64]bool{}
	for _, n := range store.AllNotifications() {
		assert.Equal(t, domain.NotificationNews, n.Kind)
		recipients[n.ClientID] = true
	}
	assert.Len(t, recipients, 3)
}

func TestSend_BroadcastFailureLeavesNothing(t *testing.T) {
	store := memstore.New()
	store.SeedClient(domain.Client{DeviceID: "a"})
	store.FailOn("notification.CreateMany", errors.New("injected"))
	s := newService(store)

	_, err := s.Send(context.Background(), &models.SendRequest{Body: "Новость", Kind: "news"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, store.AllNotifications())
}

func TestSend_Validation(t *testing.T) {
	s := newService(memstore.New())

	tests := []struct {
		name string
		req  *models.SendRequest
	}{
		{"unknown kind", &models.SendRequest{Body: "x", Kind: "promo"}},
		{"service kind is reserved", &models.SendRequest{Body: "x", Kind: "service"}},
		{"empty body", &models.SendRequest{Body: "  ", Kind: "news"}},
		{"bad client id", &models.SendRequest{ClientID: ptr.Ptr(int64(0)), Body: "x", Kind: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Send(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
