package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByPostInRange(ctx context.Context, postID int64, from, to time.Time) ([]*domain.Booking, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// CatalogRepository интерфейс репозитория услуг и постов
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PostLocker сериализует создание бронирований в рамках одного поста
type PostLocker interface {
	Lock(postID int64) (unlock func())
}

// MetricsRecorder счетчики бронирований
type MetricsRecorder interface {
	ObserveBookingCreated()
	ObserveBookingConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
