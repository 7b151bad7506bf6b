package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения слотов поста на дату.
// Результат носит справочный характер, окончательная проверка выполняется при создании бронирования.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location часовой пояс бизнеса, в котором заданы рабочие часы постов.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: post=%d, service=%d, date=%s",
		req.PostID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем пост
	post, err := uc.catalogRepo.GetPost(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPostNotFound) {
			uc.logger.Warn("GetAvailableSlots: post id=%d not found", req.PostID)
			return nil, ErrPostNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get post id=%d: %v", req.PostID, err)
		return nil, fmt.Errorf("%w: failed to get post: %v", ErrInternal, err)
	}
	if !post.IsEnabled {
		uc.logger.Warn("GetAvailableSlots: post id=%d is disabled", req.PostID)
		return nil, ErrPostDisabled
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Рабочее окно поста в часовом поясе бизнеса
	windowStart, windowEnd, err := post.Window(req.Date, uc.location)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid working hours of post id=%d: %v", req.PostID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Занятые интервалы в окне
	bookings, err := uc.bookingRepo.GetActiveByPostInRange(ctx, req.PostID, windowStart, windowEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings of post id=%d: %v", req.PostID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	slots := buildSlots(windowStart, windowEnd, post.Interval(), service.Duration(), now, bookings)

	uc.logger.Info("GetAvailableSlots: %d slots generated for post=%d, %d bookings in window",
		len(slots), req.PostID, len(bookings))

	return &Response{
		Date:            req.Date,
		PostID:          req.PostID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
