package clients

import (
	"context"
	"errors"
	"fmt"

	clientRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-PostBookingService/internal/service/clients/models"
)

// Service чтение профиля клиента
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// GetProfile получает профиль клиента
func (s *Service) GetProfile(ctx context.Context, clientID int64) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("GetProfile: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetProfile: repository error for client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClient(client), nil
}
