package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/notification"
)

// NotificationRepo in-memory аналог storage/notification.Repository.
// Вставка и перенос проверяют наличие клиента, как внешний ключ client_id.
type NotificationRepo struct {
	s *Store
}

func (r *NotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if err := r.s.enter("notification.Create"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	if _, ok := r.s.data.clients[n.ClientID]; !ok {
		return nil, fmt.Errorf("%w: Create - execute insert: %w: client id=%d", notificationRepo.ErrExecQuery, ErrForeignKey, n.ClientID)
	}

	n.ID = r.s.nextID()
	n.CreatedAt = r.s.now()
	n.IsRead = false
	r.s.data.notifications[n.ID] = *n

	out := *n
	return &out, nil
}

func (r *NotificationRepo) CreateMany(_ context.Context, n *domain.Notification, clientIDs []int64) (int64, error) {
	if err := r.s.enter("notification.CreateMany"); err != nil {
		return 0, err
	}
	defer r.s.leave()

	for _, clientID := range clientIDs {
		if _, ok := r.s.data.clients[clientID]; !ok {
			return 0, fmt.Errorf("%w: CreateMany - execute insert: %w: client id=%d", notificationRepo.ErrExecQuery, ErrForeignKey, clientID)
		}
	}

	now := r.s.now()
	for _, clientID := range clientIDs {
		copied := *n
		copied.ID = r.s.nextID()
		copied.ClientID = clientID
		copied.CreatedAt = now
		copied.IsRead = false
		r.s.data.notifications[copied.ID] = copied
	}
	return int64(len(clientIDs)), nil
}

func (r *NotificationRepo) ListByClient(_ context.Context, clientID int64, unreadOnly bool) ([]*domain.Notification, error) {
	if err := r.s.enter("notification.ListByClient"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	out := make([]*domain.Notification, 0)
	for _, n := range r.s.data.notifications {
		if n.ClientID != clientID || (unreadOnly && n.IsRead) {
			continue
		}
		n := n
		out = append(out, &n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *NotificationRepo) ListUndelivered(_ context.Context, now time.Time, maxAttempts, limit int) ([]*domain.Notification, error) {
	if err := r.s.enter("notification.ListUndelivered"); err != nil {
		return nil, err
	}
	defer r.s.leave()

	out := make([]*domain.Notification, 0)
	for _, n := range r.s.data.notifications {
		if n.DeliveredAt != nil || n.DeliveryAttempts >= maxAttempts {
			continue
		}
		if n.NextAttemptAt != nil && n.NextAttemptAt.After(now) {
			continue
		}
		n := n
		out = append(out, &n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id, clientID int64) error {
	if err := r.s.enter("notification.MarkRead"); err != nil {
		return err
	}
	defer r.s.leave()

	n, ok := r.s.data.notifications[id]
	if !ok || n.ClientID != clientID {
		return notificationRepo.ErrNotificationNotFound
	}
	n.IsRead = true
	r.s.data.notifications[id] = n
	return nil
}

func (r *NotificationRepo) MarkDelivered(_ context.Context, ids []int64, at time.Time) error {
	if err := r.s.enter("notification.MarkDelivered"); err != nil {
		return err
	}
	defer r.s.leave()

	for _, id := range ids {
		n, ok := r.s.data.notifications[id]
		if !ok {
			continue
		}
		t := at
		n.DeliveredAt = &t
		r.s.data.notifications[id] = n
	}
	return nil
}

func (r *NotificationRepo) MarkFailed(_ context.Context, id int64, nextAttemptAt time.Time) error {
	if err := r.s.enter("notification.MarkFailed"); err != nil {
		return err
	}
	defer r.s.leave()

	n, ok := r.s.data.notifications[id]
	if !ok || n.DeliveredAt != nil {
		return nil
	}
	t := nextAttemptAt
	n.DeliveryAttempts++
	n.NextAttemptAt = &t
	r.s.data.notifications[id] = n
	return nil
}

func (r *NotificationRepo) ReassignClient(_ context.Context, fromClientID, toClientID int64) (int64, error) {
	if err := r.s.enter("notification.ReassignClient"); err != nil {
		return 0, err
	}
	defer r.s.leave()

	if _, ok := r.s.data.clients[toClientID]; !ok {
		return 0, fmt.Errorf("%w: ReassignClient - execute update: %w: client id=%d", notificationRepo.ErrExecQuery, ErrForeignKey, toClientID)
	}

	var count int64
	for id, n := range r.s.data.notifications {
		if n.ClientID == fromClientID {
			n.ClientID = toClientID
			r.s.data.notifications[id] = n
			count++
		}
	}
	return count, nil
}
