package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PostBookingService/internal/progress"
	"github.com/m04kA/SMC-PostBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями клиента и административными списками
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, clientID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for client=%d", id, clientID)

	booking, err := s.getOwned(ctx, "GetByID", id, clientID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAdminBookings получает бронирования с фильтрацией по посту, дате и статусу.
// Дата трактуется как календарный день в часовом поясе бизнеса.
func (s *Service) GetAdminBookings(ctx context.Context, req *models.GetAdminBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "GetAdminBookings: fetching bookings"
	if req.PostID != nil {
		logMsg += fmt.Sprintf(", post=%d", *req.PostID)
	}
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	filter := domain.BookingsFilter{
		PostID:           req.PostID,
		IncludeCancelled: req.IncludeCancelled,
	}

	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetAdminBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	if req.Date != nil {
		y, m, d := req.Date.Date()
		from := time.Date(y, m, d, 0, 0, 0, 0, s.location)
		to := from.AddDate(0, 0, 1)
		filter.From = &from
		filter.To = &to
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdminBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdminBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование клиентом.
// Строка блокируется на время проверки, поэтому отмена не гонится со сменой статуса администратором.
func (s *Service) Cancel(ctx context.Context, bookingID int64, clientID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by client=%d", bookingID, clientID)

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getOwned(txCtx, "Cancel", bookingID, clientID)
		if err != nil {
			return err
		}

		if booking.Status.IsTerminal() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrAlreadyTerminal
		}

		result, err = s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCancelled, s.timeProvider.Now())
		if err != nil {
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveStatusTransition(string(domain.StatusCancelled))
	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// Rate сохраняет оценку клиента. Статус бронирования не проверяется.
func (s *Service) Rate(ctx context.Context, bookingID int64, req *models.RateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Rate: booking id=%d, client=%d, rating=%d", bookingID, req.ClientID, req.Rating)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		s.logger.Warn("Rate: rating %d out of range for booking id=%d", req.Rating, bookingID)
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxRatingCommentLength {
		s.logger.Warn("Rate: comment too long for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxRatingCommentLength)
	}

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getOwned(txCtx, "Rate", bookingID, req.ClientID)
		if err != nil {
			return err
		}

		if booking.Status != domain.StatusCompleted {
			s.logger.Info("Rate: booking id=%d rated in status=%s", bookingID, booking.Status)
		}

		result, err = s.bookingRepo.Rate(txCtx, bookingID, req.Rating, req.Comment, s.timeProvider.Now())
		if err != nil {
			s.logger.Error("Rate: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Rate - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Rate: successfully rated booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// GetProgress вычисляет прогресс обслуживания.
// Началом считается записанный in_progress_started_at, при его отсутствии время начала слота.
func (s *Service) GetProgress(ctx context.Context, bookingID int64, clientID int64) (*models.ProgressResponse, error) {
	booking, err := s.getOwned(ctx, "GetProgress", bookingID, clientID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case domain.StatusInProgress:
		p := progress.Compute(s.timeProvider.Now(), booking.ProgressStart(), booking.Duration())
		return models.FromProgress(booking, p), nil
	case domain.StatusCompleted:
		p := progress.Compute(booking.ProgressStart().Add(booking.Duration()), booking.ProgressStart(), booking.Duration())
		return models.FromProgress(booking, p), nil
	default:
		s.logger.Warn("GetProgress: booking id=%d has status=%s", bookingID, booking.Status)
		return nil, ErrProgressUnavailable
	}
}

// getOwned получает бронирование и проверяет, что оно принадлежит клиенту
func (s *Service) getOwned(ctx context.Context, op string, bookingID, clientID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !booking.IsOwnedBy(clientID) {
		s.logger.Warn("%s: access denied for client=%d to booking id=%d", op, clientID, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
