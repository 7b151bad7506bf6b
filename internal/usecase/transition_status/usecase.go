package transition_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/booking"
)

// UseCase административная смена статуса бронирования.
// Единственный источник уведомлений жизненного цикла.
type UseCase struct {
	bookingRepo      BookingRepository
	notificationRepo NotificationRepository
	txManager        TransactionManager
	metrics          MetricsRecorder
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notificationRepo NotificationRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		metrics:          metrics,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute блокирует строку бронирования, проверяет переход относительно
// сохраненного статуса, обновляет его и добавляет уведомление в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionStatus: booking=%d, status=%s", req.BookingID, req.Status)

	if req.BookingID <= 0 {
		uc.logger.Warn("TransitionStatus: invalid booking id=%d", req.BookingID)
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	to, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		uc.logger.Warn("TransitionStatus: %v", err)
		return nil, err
	}

	var resp *Response

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строку (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2. Проверяем переход по графу
		transition, err := domain.PlanTransition(booking.Status, to)
		if err != nil {
			uc.logger.Warn("TransitionStatus: booking id=%d: %v", req.BookingID, err)
			return err
		}

		// Повторный вход в in_progress ничего не меняет
		if transition.Noop || (to == domain.StatusInProgress && booking.InProgressStartedAt != nil) {
			uc.logger.Info("TransitionStatus: booking id=%d already in progress since %s",
				req.BookingID, booking.ProgressStart().Format("15:04:05"))
			resp = &Response{Booking: booking}
			return nil
		}

		if transition.SkipsInProgress {
			uc.logger.Warn("TransitionStatus: booking id=%d goes %s -> %s without in_progress",
				req.BookingID, transition.From, transition.To)
		}

		// 3. Обновляем статус и временные метки
		updated, err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, to, uc.timeProvider.Now())
		if err != nil {
			uc.logger.Error("TransitionStatus: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}
		resp = &Response{Booking: updated, Changed: true}

		// 4. Уведомление в outbox
		notification := domain.LifecycleNotification(updated, to, uc.location)
		if notification == nil {
			return nil
		}
		created, err := uc.notificationRepo.Create(txCtx, notification)
		if err != nil {
			uc.logger.Error("TransitionStatus: failed to create notification for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to create notification: %w", ErrInternal, err)
		}
		resp.NotificationID = &created.ID

		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Changed {
		uc.metrics.ObserveStatusTransition(string(to))
	}

	uc.logger.Info("TransitionStatus: booking id=%d is %s", req.BookingID, resp.Booking.Status)
	return resp, nil
}
