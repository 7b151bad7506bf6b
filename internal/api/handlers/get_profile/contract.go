package get_profile

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/service/clients/models"
)

type ClientService interface {
	GetProfile(ctx context.Context, clientID int64) (*models.ClientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
