package outbox

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// NotificationRepository интерфейс для работы с outbox уведомлений
type NotificationRepository interface {
	ListUndelivered(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*domain.Notification, error)
	MarkDelivered(ctx context.Context, ids []int64, at time.Time) error
	MarkFailed(ctx context.Context, id int64, nextAttemptAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Transport канал доставки уведомлений.
// Доставка at-least-once: получатель отбрасывает дубли по MessageID.
type Transport interface {
	Name() string
	Deliver(ctx context.Context, n *domain.Notification) error
}

// MetricsRecorder интерфейс для записи метрик доставки
type MetricsRecorder interface {
	ObserveNotificationRelayed(transport string, ok bool)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
