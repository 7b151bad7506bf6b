package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByPostInRange получает неотмененные бронирования поста, пересекающие [from, to)
	GetActiveByPostInRange(ctx context.Context, postID int64, from, to time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория услуг и постов
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
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
