package get_booking_progress

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetProgress(ctx context.Context, bookingID int64, clientID int64) (*models.ProgressResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
