package notifications

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	CreateMany(ctx context.Context, n *domain.Notification, clientIDs []int64) (int64, error)
	ListByClient(ctx context.Context, clientID int64, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, clientID int64) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
