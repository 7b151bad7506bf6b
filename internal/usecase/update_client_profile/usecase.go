package update_client_profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-PostBookingService/pkg/txmanager"
)

// UseCase обновление профиля клиента со слиянием записей по телефону.
// Если новый настоящий номер уже принадлежит другому клиенту, история и баллы
// той записи переносятся на текущего клиента, а сама запись удаляется.
type UseCase struct {
	clientRepo       ClientRepository
	bookingRepo      BookingRepository
	notificationRepo NotificationRepository
	catalogRepo      CatalogRepository
	txManager        TransactionManager
	metrics          MetricsRecorder
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clientRepo ClientRepository,
	bookingRepo BookingRepository,
	notificationRepo NotificationRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		clientRepo:       clientRepo,
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		catalogRepo:      catalogRepo,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет обновление профиля в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateClientProfile: client=%d", req.ClientID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateClientProfile: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем текущего клиента
		self, err := uc.clientRepo.GetByID(txCtx, req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("UpdateClientProfile: client id=%d not found", req.ClientID)
				return ErrClientNotFound
			}
			uc.logger.Error("UpdateClientProfile: failed to get client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
		}

		if req.Patch.SelectedPostID != nil {
			if err := uc.checkPost(txCtx, *req.Patch.SelectedPostID); err != nil {
				return err
			}
		}

		updated := *self
		req.Patch.ApplyTo(&updated)
		resp = &Response{}

		// 2. Слияние, если настоящий номер уже у другого клиента
		if req.Patch.Phone != nil && updated.PhoneNorm != nil {
			mergedID, points, err := uc.mergeByPhone(txCtx, self, *updated.PhoneNorm)
			if err != nil {
				return err
			}
			if mergedID != nil {
				updated.LoyaltyPoints = points
				resp.MergedClientID = mergedID
			}
		}

		// 3. Применяем изменения полей
		saved, err := uc.clientRepo.Update(txCtx, &updated)
		if err != nil {
			if errors.Is(err, clientRepo.ErrPhoneTaken) {
				uc.logger.Warn("UpdateClientProfile: phone of client id=%d was taken concurrently", req.ClientID)
				return fmt.Errorf("%w: %w", ErrPhoneConflict, err)
			}
			uc.logger.Error("UpdateClientProfile: failed to update client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to update client: %w", ErrInternal, err)
		}
		resp.Client = saved

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrConcurrentUpdate) {
			uc.logger.Warn("UpdateClientProfile: concurrent update of client id=%d: %v", req.ClientID, err)
			return nil, fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
		}
		return nil, err
	}

	if resp.MergedClientID != nil {
		uc.metrics.ObserveIdentityMerge()
	}

	uc.logger.Info("UpdateClientProfile: client id=%d updated", req.ClientID)
	return resp, nil
}

// mergeByPhone переносит бронирования, уведомления и баллы клиента с тем же номером на self
// и удаляет его запись. Возвращает ID удаленной записи и итоговый баланс self.
func (uc *UseCase) mergeByPhone(ctx context.Context, self *domain.Client, phoneNorm string) (*int64, int, error) {
	other, err := uc.clientRepo.FindByPhoneNorm(ctx, phoneNorm, self.ID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, 0, nil
		}
		uc.logger.Error("UpdateClientProfile: failed to find client by phone: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to find client by phone: %w", ErrInternal, err)
	}

	// Владение номером не подтверждается, поэтому каждое слияние фиксируется в логе
	uc.logger.Warn("UpdateClientProfile: merging client id=%d into client id=%d by phone", other.ID, self.ID)

	bookings, err := uc.bookingRepo.ReassignClient(ctx, other.ID, self.ID)
	if err != nil {
		uc.logger.Error("UpdateClientProfile: failed to reassign bookings %d -> %d: %v", other.ID, self.ID, err)
		return nil, 0, fmt.Errorf("%w: failed to reassign bookings: %w", ErrInternal, err)
	}

	notifications, err := uc.notificationRepo.ReassignClient(ctx, other.ID, self.ID)
	if err != nil {
		uc.logger.Error("UpdateClientProfile: failed to reassign notifications %d -> %d: %v", other.ID, self.ID, err)
		return nil, 0, fmt.Errorf("%w: failed to reassign notifications: %w", ErrInternal, err)
	}

	points := domain.MergedLoyaltyPoints(self.LoyaltyPoints, other.LoyaltyPoints)
	if err := uc.clientRepo.SetLoyaltyPoints(ctx, self.ID, points); err != nil {
		uc.logger.Error("UpdateClientProfile: failed to set loyalty points of client id=%d: %v", self.ID, err)
		return nil, 0, fmt.Errorf("%w: failed to set loyalty points: %w", ErrInternal, err)
	}

	if err := uc.clientRepo.Delete(ctx, other.ID); err != nil {
		uc.logger.Error("UpdateClientProfile: failed to delete client id=%d: %v", other.ID, err)
		return nil, 0, fmt.Errorf("%w: failed to delete merged client: %w", ErrInternal, err)
	}

	uc.logger.Info("UpdateClientProfile: merged client id=%d into id=%d: %d bookings, %d notifications, %d points",
		other.ID, self.ID, bookings, notifications, points)

	return &other.ID, points, nil
}

func (uc *UseCase) checkPost(ctx context.Context, postID int64) error {
	if _, err := uc.catalogRepo.GetPost(ctx, postID); err != nil {
		if errors.Is(err, catalogRepo.ErrPostNotFound) {
			uc.logger.Warn("UpdateClientProfile: selected post id=%d not found", postID)
			return ErrSelectedPostNotFound
		}
		uc.logger.Error("UpdateClientProfile: failed to get post id=%d: %v", postID, err)
		return fmt.Errorf("%w: failed to get post: %w", ErrInternal, err)
	}
	return nil
}
