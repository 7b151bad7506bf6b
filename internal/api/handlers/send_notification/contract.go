package send_notification

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/service/notifications/models"
)

type NotificationService interface {
	Send(ctx context.Context, req *models.SendRequest) (*models.SendResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
