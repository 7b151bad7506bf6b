package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/client"
	notificationRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-PostBookingService/internal/service/notifications/models"
)

// Service лента уведомлений клиента и сообщения администратора
type Service struct {
	notificationRepo NotificationRepository
	clientRepo       ClientRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	notificationRepo NotificationRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		clientRepo:       clientRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// List получает уведомления клиента, новые первыми
func (s *Service) List(ctx context.Context, clientID int64, unreadOnly bool) (*models.NotificationListResponse, error) {
	list, err := s.notificationRepo.ListByClient(ctx, clientID, unreadOnly)
	if err != nil {
		s.logger.Error("List: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d notifications for client=%d", len(list), clientID)
	return models.FromDomainNotificationList(list), nil
}

// MarkRead отмечает уведомление клиента прочитанным
func (s *Service) MarkRead(ctx context.Context, id, clientID int64) error {
	if err := s.notificationRepo.MarkRead(ctx, id, clientID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d of client=%d not found", id, clientID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkRead: notification id=%d read by client=%d", id, clientID)
	return nil
}

// Send отправляет личное сообщение или рассылку.
// Рассылка создает по строке на каждого клиента в одной транзакции.
func (s *Service) Send(ctx context.Context, req *models.SendRequest) (*models.SendResponse, error) {
	n, err := validateSend(req)
	if err != nil {
		s.logger.Warn("Send: validation failed: %v", err)
		return nil, err
	}

	if req.ClientID != nil {
		return s.sendDirect(ctx, *req.ClientID, n)
	}
	return s.broadcast(ctx, n)
}

func (s *Service) sendDirect(ctx context.Context, clientID int64, n *domain.Notification) (*models.SendResponse, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Send: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("Send: failed to get client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: Send - failed to get client: %v", ErrInternal, err)
	}

	n.ClientID = clientID
	created, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		s.logger.Error("Send: failed to create notification for client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: Send - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Send: notification id=%d (%s) sent to client id=%d", created.ID, n.Kind, clientID)
	return &models.SendResponse{Recipients: 1}, nil
}

func (s *Service) broadcast(ctx context.Context, n *domain.Notification) (*models.SendResponse, error) {
	var recipients int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		ids, err := s.clientRepo.ListIDs(txCtx)
		if err != nil {
			s.logger.Error("Send: failed to list clients: %v", err)
			return fmt.Errorf("%w: Send - failed to list clients: %v", ErrInternal, err)
		}
		if len(ids) == 0 {
			return nil
		}

		recipients, err = s.notificationRepo.CreateMany(txCtx, n, ids)
		if err != nil {
			s.logger.Error("Send: failed to create broadcast for %d clients: %v", len(ids), err)
			return fmt.Errorf("%w: Send - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Send: broadcast (%s) sent to %d clients", n.Kind, recipients)
	return &models.SendResponse{Recipients: recipients}, nil
}

// validateSend проверяет запрос и строит уведомление без адресата
func validateSend(req *models.SendRequest) (*domain.Notification, error) {
	kind, err := domain.ParseNotificationKind(req.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if kind == domain.NotificationService {
		return nil, fmt.Errorf("%w: kind service is reserved for booking lifecycle", ErrInvalidInput)
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(body) > domain.MaxBodyLength {
		return nil, fmt.Errorf("%w: body must be at most %d characters", ErrInvalidInput, domain.MaxBodyLength)
	}
	if req.Title != nil && utf8.RuneCountInString(*req.Title) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.ClientID != nil && *req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	return &domain.Notification{Title: req.Title, Body: body, Kind: kind}, nil
}
