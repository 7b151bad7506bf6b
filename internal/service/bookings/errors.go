package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: bookings: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому клиенту
	ErrAccessDenied = fmt.Errorf("%w: bookings: access denied", domain.ErrForbidden)

	// ErrAlreadyTerminal возвращается при отмене завершенного или отмененного бронирования
	ErrAlreadyTerminal = fmt.Errorf("%w: bookings: booking is already completed or cancelled", domain.ErrAlreadyTerminal)

	// ErrProgressUnavailable возвращается, когда обслуживание еще не началось или бронирование отменено
	ErrProgressUnavailable = fmt.Errorf("%w: bookings: progress is available for in_progress and completed bookings", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: bookings: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
