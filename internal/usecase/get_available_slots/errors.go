package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

var (
	// ErrPostNotFound возвращается, когда пост не найден
	ErrPostNotFound = fmt.Errorf("%w: get_available_slots: post not found", domain.ErrDisabled)

	// ErrPostDisabled возвращается, когда пост отключен
	ErrPostDisabled = fmt.Errorf("%w: get_available_slots: post is disabled", domain.ErrDisabled)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: get_available_slots: service not found", domain.ErrNotFound)

	// ErrServiceInactive возвращается, когда услуга неактивна
	ErrServiceInactive = fmt.Errorf("%w: get_available_slots: service is inactive", domain.ErrDisabled)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
