package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиента уже нет (например, после слияния профилей)
	ErrClientNotFound = fmt.Errorf("%w: create_booking: client not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_booking: service not found", domain.ErrNotFound)

	// ErrServiceInactive возвращается, когда услуга неактивна
	ErrServiceInactive = fmt.Errorf("%w: create_booking: service is inactive", domain.ErrDisabled)

	// ErrPostNotFound возвращается, когда пост не найден
	ErrPostNotFound = fmt.Errorf("%w: create_booking: post not found", domain.ErrNotFound)

	// ErrPostDisabled возвращается, когда пост отключен
	ErrPostDisabled = fmt.Errorf("%w: create_booking: post is disabled", domain.ErrDisabled)

	// ErrStartInPast возвращается, когда время начала уже прошло
	ErrStartInPast = fmt.Errorf("%w: create_booking: start time is in the past", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие часы поста
	ErrOutsideWorkingHours = fmt.Errorf("create_booking: %w", domain.ErrOutsideWorkingHours)

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: slot is not available", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
