package notifications

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено или принадлежит другому клиенту
	ErrNotificationNotFound = fmt.Errorf("%w: notifications: notification not found", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда адресат не найден
	ErrClientNotFound = fmt.Errorf("%w: notifications: client not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: notifications: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("notifications: internal error")
)
