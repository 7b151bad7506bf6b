package update_client_profile

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	FindByPhoneNorm(ctx context.Context, phoneNorm string, excludeID int64) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) (*domain.Client, error)
	SetLoyaltyPoints(ctx context.Context, id int64, points int) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ReassignClient(ctx context.Context, fromClientID, toClientID int64) (int64, error)
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	ReassignClient(ctx context.Context, fromClientID, toClientID int64) (int64, error)
}

// CatalogRepository нужен для проверки выбранного поста
type CatalogRepository interface {
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счетчик слияний
type MetricsRecorder interface {
	ObserveIdentityMerge()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
