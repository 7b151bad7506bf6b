package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-PostBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	clientRepo   ClientRepository
	txManager    TransactionManager
	locker       PostLocker
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	locker PostLocker,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		clientRepo:   clientRepo,
		txManager:    txManager,
		locker:       locker,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Создания в рамках одного поста сериализуются блокировкой поста,
// все проверки повторяются внутри сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, post=%d, service=%d, start=%s",
		req.ClientID, req.PostID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Время начала не в прошлом
	if err := validateStartTime(req.StartAt, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Блокировка поста
	unlock := uc.locker.Lock(req.PostID)
	defer unlock()

	var result *domain.Booking

	// 4. Проверки и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Клиент. Токен поглощенной при слиянии записи действует до истечения TTL
		if _, err := uc.clientRepo.GetByID(txCtx, req.ClientID); err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("CreateBooking: client id=%d not found", req.ClientID)
				return ErrClientNotFound
			}
			uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
		}

		// 4.2. Услуга
		service, err := uc.catalogRepo.GetService(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !service.IsActive {
			uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
			return ErrServiceInactive
		}

		// 4.3. Пост
		post, err := uc.catalogRepo.GetPost(txCtx, req.PostID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrPostNotFound) {
				uc.logger.Warn("CreateBooking: post id=%d not found", req.PostID)
				return ErrPostNotFound
			}
			uc.logger.Error("CreateBooking: failed to get post id=%d: %v", req.PostID, err)
			return fmt.Errorf("%w: failed to get post: %w", ErrInternal, err)
		}
		if !post.IsEnabled {
			uc.logger.Warn("CreateBooking: post id=%d is disabled", req.PostID)
			return ErrPostDisabled
		}

		// 4.4. Интервал внутри рабочих часов поста
		start := req.StartAt
		end := start.Add(service.Duration())

		fits, err := post.Fits(start, end, uc.location)
		if err != nil {
			uc.logger.Error("CreateBooking: invalid working hours of post id=%d: %v", req.PostID, err)
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if !fits {
			uc.logger.Warn("CreateBooking: interval %s - %s is outside working hours %s - %s of post id=%d",
				start.In(uc.location).Format(domain.TimeFormat), end.In(uc.location).Format(domain.TimeFormat),
				post.WorkStart, post.WorkEnd, req.PostID)
			return ErrOutsideWorkingHours
		}

		// 4.5. Пересечения с блокировкой строк (FOR UPDATE)
		overlapping, err := uc.bookingRepo.GetActiveByPostInRange(txCtx, req.PostID, start, end)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings of post id=%d: %v", req.PostID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot overlaps booking id=%d on post id=%d", overlapping[0].ID, req.PostID)
			return ErrSlotNotAvailable
		}

		// 4.6. Вставка со снимком данных услуги
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ServiceID:       service.ID,
			PostID:          post.ID,
			ClientID:        req.ClientID,
			StartAt:         start,
			EndAt:           end,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.translateTxError(req, err)
	}

	uc.metrics.ObserveBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ServiceID:       result.ServiceID,
		PostID:          result.PostID,
		StartAt:         result.StartAt,
		EndAt:           result.EndAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// translateTxError сводит нарушение ограничения и конфликт сериализации к ErrSlotNotAvailable
func (uc *UseCase) translateTxError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.ObserveBookingConflict()
		return err
	case errors.Is(err, bookingRepo.ErrSlotTaken), errors.Is(err, txmanager.ErrConcurrentUpdate):
		uc.logger.Warn("CreateBooking: concurrent booking detected on post id=%d: %v", req.PostID, err)
		uc.metrics.ObserveBookingConflict()
		return fmt.Errorf("%w: %w", ErrSlotNotAvailable, err)
	default:
		return err
	}
}
