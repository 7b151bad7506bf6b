package register_client

import (
	"context"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	CreateOrGet(ctx context.Context, deviceID string) (*domain.Client, bool, error)
}

// TokenIssuer выпускает токен клиента
type TokenIssuer interface {
	Issue(clientID int64) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
