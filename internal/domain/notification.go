package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/pkg/ptr"
)

// NotificationKind вид уведомления
type NotificationKind string

const (
	NotificationService NotificationKind = "service"
	NotificationAdmin   NotificationKind = "admin"
	NotificationNews    NotificationKind = "news"
)

// ParseNotificationKind проверяет вид уведомления
func ParseNotificationKind(s string) (NotificationKind, error) {
	switch k := NotificationKind(s); k {
	case NotificationService, NotificationAdmin, NotificationNews:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown notification kind %q", ErrValidation, s)
	}
}

// Notification immutable feed entry; DeliveredAt marks outbox delivery
type Notification struct {
	ID          int64
	ClientID    int64
	Title       *string
	Body        string
	Kind        NotificationKind
	BookingID   *int64
	IsRead      bool
	CreatedAt   time.Time
	DeliveredAt *time.Time

	// DeliveryAttempts число неудачных попыток доставки, NextAttemptAt не раньше какого момента пробовать снова
	DeliveryAttempts int
	NextAttemptAt    *time.Time
}

// Тексты уведомлений жизненного цикла бронирования
const (
	titleBookingConfirmed = "Запись подтверждена"
	titleServiceStarted   = "Обслуживание началось"
	titleServiceCompleted = "Обслуживание завершено"
)

// LifecycleNotification уведомление для перехода в статус to.
// Время в тексте выводится в часовом поясе бизнеса loc.
// Возвращает nil, если для перехода уведомление не предусмотрено.
func LifecycleNotification(b *Booking, to BookingStatus, loc *time.Location) *Notification {
	var title, body string
	switch to {
	case StatusConfirmed:
		title = titleBookingConfirmed
		body = fmt.Sprintf("%s, %s", b.ServiceName, b.StartAt.In(loc).Format("02.01.2006 15:04"))
	case StatusInProgress:
		title = titleServiceStarted
		body = fmt.Sprintf("%s: мастер приступил к работе", b.ServiceName)
	case StatusCompleted:
		title = titleServiceCompleted
		body = fmt.Sprintf("%s: всё готово, можно забирать", b.ServiceName)
	default:
		return nil
	}

	return &Notification{
		ClientID:  b.ClientID,
		Title:     ptr.Ptr(title),
		Body:      body,
		Kind:      NotificationService,
		BookingID: ptr.Ptr(b.ID),
	}
}
