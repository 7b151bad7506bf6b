package register_client

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// UseCase регистрирует устройство или возвращает уже существующего клиента
type UseCase struct {
	clientRepo ClientRepository
	tokens     TokenIssuer
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(clientRepo ClientRepository, tokens TokenIssuer, logger Logger) *UseCase {
	return &UseCase{
		clientRepo: clientRepo,
		tokens:     tokens,
		logger:     logger,
	}
}

// Execute выполняет регистрацию. Повторный вызов с тем же device id возвращает того же клиента.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" || utf8.RuneCountInString(deviceID) > domain.MaxNameLength {
		uc.logger.Warn("RegisterClient: invalid device id %q", req.DeviceID)
		return nil, fmt.Errorf("%w: deviceId must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	client, created, err := uc.clientRepo.CreateOrGet(ctx, deviceID)
	if err != nil {
		uc.logger.Error("RegisterClient: failed to create client for device %q: %v", deviceID, err)
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
	}

	token, err := uc.tokens.Issue(client.ID)
	if err != nil {
		uc.logger.Error("RegisterClient: failed to issue token for client id=%d: %v", client.ID, err)
		return nil, fmt.Errorf("%w: failed to issue token: %v", ErrInternal, err)
	}

	if created {
		uc.logger.Info("RegisterClient: new client id=%d for device %q", client.ID, deviceID)
	} else {
		uc.logger.Info("RegisterClient: existing client id=%d for device %q", client.ID, deviceID)
	}

	return &Response{ClientID: client.ID, Token: token, Created: created}, nil
}
