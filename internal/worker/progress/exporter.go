// Package progress периодически пересчитывает прогресс обслуживания
// бронирований в статусе in_progress и публикует его как gauge prometheus.
// Хранилище только читается.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	clock "github.com/m04kA/SMC-PostBookingService/internal/progress"
)

// BookingRepository интерфейс для чтения бронирований
type BookingRepository interface {
	ListInProgress(ctx context.Context) ([]*domain.Booking, error)
}

// MetricsRecorder интерфейс для экспорта прогресса
type MetricsRecorder interface {
	ResetBookingProgress(inProgress int)
	ObserveBookingProgress(postID, bookingID int64, fraction float64, remainingMinutes int)
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
	Error(format string, v ...interface{})
}

// Exporter экспортер прогресса
type Exporter struct {
	bookingRepo  BookingRepository
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewExporter создает новый экземпляр экспортера
func NewExporter(bookingRepo BookingRepository, metrics MetricsRecorder, logger Logger) *Exporter {
	return &Exporter{
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// RunOnce снимает прогресс всех бронирований в работе и возвращает их число
func (e *Exporter) RunOnce(ctx context.Context) (int, error) {
	bookings, err := e.bookingRepo.ListInProgress(ctx)
	if err != nil {
		e.logger.Error("ProgressExporter: failed to list in-progress bookings: %v", err)
		return 0, fmt.Errorf("progress: list in progress: %w", err)
	}

	now := e.timeProvider.Now()
	e.metrics.ResetBookingProgress(len(bookings))
	for _, b := range bookings {
		p := clock.Compute(now, b.ProgressStart(), b.Duration())
		e.metrics.ObserveBookingProgress(b.PostID, b.ID, p.Fraction, p.RemainingMinutes)
	}

	return len(bookings), nil
}
